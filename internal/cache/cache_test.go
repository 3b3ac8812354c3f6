package cache

import (
	"strings"
	"testing"
	"time"
)

func TestSetGetFlush(t *testing.T) {
	c := New(true)
	defer c.Close()

	etag := c.Set("leaders:batting:5", []byte(`{"status":"ok"}`), time.Minute)
	data, got, ok := c.Get("leaders:batting:5")
	if !ok || got != etag || string(data) != `{"status":"ok"}` {
		t.Fatalf("Get = %q %q %v", data, got, ok)
	}
	if _, _, ok := c.Get("missing"); ok {
		t.Fatal("unexpected hit")
	}

	c.Set("matches:summary", []byte(`{}`), time.Minute)
	if n := c.Flush(); n != 2 {
		t.Errorf("Flush() = %d, want 2", n)
	}
	if _, _, ok := c.Get("leaders:batting:5"); ok {
		t.Error("entry survived Flush")
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 2 || s.Flushes != 1 || s.Keys != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c := New(true)
	defer c.Close()

	c.Set("k", []byte("v"), -time.Second)
	if _, _, ok := c.Get("k"); ok {
		t.Error("expired entry returned")
	}
	if s := c.Stats(); s.Keys != 1 || s.Active != 0 {
		t.Errorf("stats before evict = %+v", s)
	}
	c.evict()
	if s := c.Stats(); s.Keys != 0 {
		t.Errorf("stats after evict = %+v", s)
	}
}

func TestDisabledCache(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	if etag == "" {
		t.Error("disabled cache should still compute an etag")
	}
	if _, _, ok := c.Get("k"); ok {
		t.Error("disabled cache returned a hit")
	}
	c.Close()
	c.Close()
}

func TestKey(t *testing.T) {
	if got := Key("batting", " Kohli "); got != "batting:Kohli" {
		t.Errorf("Key() = %q", got)
	}
	if Key("batting", "KOHLI") == Key("batting", "kohli") {
		t.Error("keys differing only in case must not collide")
	}
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("body"))
	strong := strings.TrimPrefix(etag, "W/")
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"*", true},
		{etag, true},
		{strong, true},
		{`W/"other", ` + etag, true},
		{`W/"other"`, false},
	}
	for _, tt := range tests {
		if got := CheckETagMatch(tt.header, etag); got != tt.want {
			t.Errorf("CheckETagMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
