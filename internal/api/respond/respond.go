// Package respond writes API responses: cached JSON bodies with ETags, and a
// single error envelope shared by every handler.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// ErrorBody is the payload inside the error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorResponse is the envelope every API error is wrapped in.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

const contentTypeJSON = "application/json"

// WriteJSON writes an already-encoded body with its ETag. ttl drives
// Cache-Control; cacheHit sets X-Cache.
func WriteJSON(w http.ResponseWriter, body []byte, etag string, ttl time.Duration, cacheHit bool) {
	h := w.Header()
	h.Set("Content-Type", contentTypeJSON)
	h.Set("ETag", etag)
	h.Set("Vary", "Accept-Encoding")
	h.Set("Cache-Control", cacheControl(ttl))
	if cacheHit {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// WriteNotModified answers a conditional GET whose ETag still matches.
func WriteNotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}

// WriteError writes the error envelope without a detail field.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteErrorDetail(w, status, code, message, "")
}

// WriteErrorDetail writes the error envelope. Errors are never cached.
func WriteErrorDetail(w http.ResponseWriter, status int, code, message, detail string) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	WriteJSONObject(w, status, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
		Detail:  detail,
	}})
}

// WriteJSONObject encodes v with the given status and no caching headers.
// Health checks and ingest results go through here.
func WriteJSONObject(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// cacheControl allows clients to serve a stale copy for half the TTL while
// revalidating.
func cacheControl(ttl time.Duration) string {
	maxAge := int(ttl / time.Second)
	return "public, max-age=" + strconv.Itoa(maxAge) +
		", stale-while-revalidate=" + strconv.Itoa(maxAge/2)
}
