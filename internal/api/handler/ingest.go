package handler

import (
	"errors"
	"net/http"

	"github.com/albapepper/cricket-stats/internal/api/respond"
)

// maxIngestBody caps a single ingest request.
const maxIngestBody = 32 << 20

// PostIngest loads match documents from the request body.
// @Summary Ingest match documents
// @Description Accepts one match document or a JSON array of documents. Each document commits in its own transaction; failures are listed in errors and do not stop the batch. Flushes the response cache.
// @Tags ingest
// @Accept json
// @Produce json
// @Param body body object true "Match document or array of documents"
// @Success 200 {object} ingest.Result
// @Failure 400 {object} respond.ErrorResponse
// @Failure 413 {object} respond.ErrorResponse
// @Router /ingest [post]
func (h *Handler) PostIngest(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxIngestBody)
	defer body.Close()

	result, err := h.loader.LoadJSON(r.Context(), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.WriteError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body exceeds 32 MiB")
			return
		}
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_JSON", "Request body is not a JSON document or array", err.Error())
		return
	}

	flushed := h.cache.Flush()
	h.logger.Info("Documents ingested via API",
		"run_id", result.RunID,
		"summary", result.Summary(),
		"cache_flushed", flushed)

	respond.WriteJSONObject(w, http.StatusOK, result)
}
