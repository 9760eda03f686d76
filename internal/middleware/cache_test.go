package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roomgrid/roombook/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"available": true}`)

	enc, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(enc)
	if !ok {
		t.Fatal("decode reported failure")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("header lost: %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q", gotBody)
	}
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, {0, 0, 0, 200, 0, 0, 1, 0}} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("decode accepted malformed payload %v", bs)
		}
	}
}

func TestCacheKeyFrom(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "roombook:cache", KeyStrategy: "route_query"}

	key := func(target string) string {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/api/bookings/check-availability")
		return cacheKeyFrom(cfg, c)
	}

	a := key("/api/bookings/check-availability?room_id=1")
	b := key("/api/bookings/check-availability?room_id=1")
	other := key("/api/bookings/check-availability?room_id=2")

	if a != b {
		t.Error("identical requests produced different keys")
	}
	if a == other {
		t.Error("different queries share a cache key")
	}
	if got, want := a[:len(cfg.Prefix)+1], cfg.Prefix+":"; got != want {
		t.Errorf("key prefix = %q, want %q", got, want)
	}
}
