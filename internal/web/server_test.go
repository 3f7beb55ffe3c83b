package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/comic-composer/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Presets: config.PresetConfig{Dir: t.TempDir(), Default: "2col"},
		Compose: config.ComposeConfig{FitMode: "contain", ScaleFilter: "catmullrom"},
	}
	return NewServer(cfg, "127.0.0.1", 0)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, rec.Body.String())
	}
	return rec, payload
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	rec, payload := doJSON(t, s, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if payload["status"] != "ok" {
		t.Errorf("payload = %v", payload)
	}
}

func TestListPresets(t *testing.T) {
	s := testServer(t)
	rec, payload := doJSON(t, s, http.MethodGet, "/api/v1/presets", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	presets, ok := payload["presets"].([]any)
	if !ok || len(presets) < 3 {
		t.Fatalf("expected at least the built-in presets, got %v", payload)
	}

	found := false
	for _, raw := range presets {
		p := raw.(map[string]any)
		if p["name"] == "2col" && p["builtin"] == true {
			found = true
			if p["cells"].(float64) != 6 {
				t.Errorf("2col cells = %v, want 6", p["cells"])
			}
		}
	}
	if !found {
		t.Error("built-in 2col preset not listed")
	}
}

func TestGetPreset(t *testing.T) {
	s := testServer(t)

	rec, payload := doJSON(t, s, http.MethodGet, "/api/v1/presets/grid4", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	p, ok := payload["preset"].(map[string]any)
	if !ok || p["name"] != "grid4" {
		t.Errorf("payload = %v", payload)
	}

	rec, _ = doJSON(t, s, http.MethodGet, "/api/v1/presets/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCompose(t *testing.T) {
	s := testServer(t)

	inputDir := t.TempDir()
	for i := 0; i < 5; i++ {
		var buf bytes.Buffer
		if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(inputDir, fmt.Sprintf("p%d.png", i)), buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	outputDir := filepath.Join(t.TempDir(), "pages")

	rec, payload := doJSON(t, s, http.MethodPost, "/api/v1/compose", map[string]any{
		"input_dir":  inputDir,
		"preset":     "grid4",
		"fit":        "stretch",
		"output_dir": outputDir,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", rec.Code, payload)
	}
	if payload["run_id"] == "" {
		t.Error("missing run_id")
	}
	if payload["image_count"].(float64) != 5 {
		t.Errorf("image_count = %v, want 5", payload["image_count"])
	}
	// 5 images over 4 cells per page -> 2 pages.
	if payload["page_count"].(float64) != 2 {
		t.Errorf("page_count = %v, want 2", payload["page_count"])
	}
	pages := payload["pages"].([]any)
	if len(pages) != 2 {
		t.Fatalf("pages = %v", pages)
	}
	for _, p := range pages {
		if _, err := os.Stat(p.(string)); err != nil {
			t.Errorf("page %v not written: %v", p, err)
		}
	}
}

func TestCompose_BadRequests(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "missing input_dir",
			body: map[string]any{"preset": "grid4"},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown preset",
			body: map[string]any{"input_dir": t.TempDir(), "preset": "nope"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad fit mode",
			body: map[string]any{"input_dir": t.TempDir(), "preset": "grid4", "fit": "tile"},
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, payload := doJSON(t, s, http.MethodPost, "/api/v1/compose", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %v)", rec.Code, tt.want, payload)
			}
			if payload["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}
