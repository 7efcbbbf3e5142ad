package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ChicagoDave/skyline/pkg/config"
	"github.com/ChicagoDave/skyline/pkg/scene"
	"github.com/ChicagoDave/skyline/pkg/validation"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer() *Server {
	cfg := config.Default()
	cfg.Seed = 42
	return New(cfg, 0)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.Router().ServeHTTP(w, req)
	return w
}

func TestNewPortFallback(t *testing.T) {
	s := New(config.Default(), 0)
	if s.port != 3000 {
		t.Errorf("port = %d, want config default 3000", s.port)
	}
	if New(config.Default(), 9000).port != 9000 {
		t.Error("explicit port should win")
	}
}

func TestHealth(t *testing.T) {
	w := get(t, testServer(), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestBuildings_SeededIsCached(t *testing.T) {
	s := testServer()
	a := get(t, s, "/api/buildings?width=800&height=300")
	b := get(t, s, "/api/buildings?width=800&height=300")
	if a.Code != http.StatusOK || b.Code != http.StatusOK {
		t.Fatalf("status = %d/%d", a.Code, b.Code)
	}
	if a.Body.String() != b.Body.String() {
		t.Error("seeded requests should return identical buildings")
	}
	if s.cache.len() != 1 {
		t.Errorf("cache entries = %d, want 1", s.cache.len())
	}

	var resp struct {
		Canvas    config.Canvas     `json:"canvas"`
		Seed      uint64            `json:"seed"`
		Buildings []json.RawMessage `json:"buildings"`
	}
	if err := json.Unmarshal(a.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Canvas.Width != 800 || resp.Seed != 42 || len(resp.Buildings) == 0 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestBuildings_UnseededNotCached(t *testing.T) {
	s := New(config.Default(), 0)
	w := get(t, s, "/api/buildings")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if s.cache.len() != 0 {
		t.Errorf("cache entries = %d, want 0", s.cache.len())
	}
}

func TestBuildings_BadRequests(t *testing.T) {
	s := testServer()
	for _, q := range []string{
		"width=abc",
		"width=0",
		"height=-3",
		"seed=-1",
		"clamp=maybe",
		"width=100000",
	} {
		w := get(t, s, "/api/buildings?"+q)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, w.Code)
		}
		if !strings.Contains(w.Body.String(), "error") {
			t.Errorf("%s: body = %s", q, w.Body.String())
		}
	}
}

func TestScene(t *testing.T) {
	w := get(t, testServer(), "/api/scene?width=640&height=360")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var g scene.Graph
	if err := json.Unmarshal(w.Body.Bytes(), &g); err != nil {
		t.Fatal(err)
	}
	if g.Metadata.Canvas.Width != 640 || g.Metadata.Canvas.Height != 360 {
		t.Errorf("canvas = %+v", g.Metadata.Canvas)
	}
	if len(g.Entities) == 0 {
		t.Error("expected entities")
	}
}

func TestValidation(t *testing.T) {
	w := get(t, testServer(), "/api/validation")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var r validation.Report
	if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if !r.Valid {
		t.Errorf("expected valid report, got %s", r.Summary)
	}
}

func TestSVG(t *testing.T) {
	w := get(t, testServer(), "/skyline.svg")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "<svg") {
		t.Error("body is not an svg document")
	}
}

func TestPNG(t *testing.T) {
	w := get(t, testServer(), "/skyline.png?width=200&height=100&scale=0.5")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("size = %v, want 100x50", b)
	}

	for _, q := range []string{"scale=0", "scale=9", "scale=x", "width=5000&height=5000&scale=4"} {
		if w := get(t, testServer(), "/skyline.png?"+q); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, w.Code)
		}
	}
}

func TestIndex(t *testing.T) {
	w := get(t, testServer(), "/")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/skyline.svg") {
		t.Errorf("index status %d body %s", w.Code, w.Body.String())
	}
}

func TestConfig(t *testing.T) {
	w := get(t, testServer(), "/api/config")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"seed":42`) {
		t.Errorf("config status %d body %s", w.Code, w.Body.String())
	}
}
