package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kozaktomas/comic-composer/internal/composer"
	"github.com/kozaktomas/comic-composer/internal/engine"
	"github.com/kozaktomas/comic-composer/internal/preset"
)

type presetSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Builtin     bool   `json:"builtin"`
	Cells       int    `json:"cells"`
}

type composeRequest struct {
	InputDir    string `json:"input_dir"`
	Preset      string `json:"preset"`
	Fit         string `json:"fit"`
	OutputDir   string `json:"output_dir"`
	NaturalSort bool   `json:"natural_sort"`
}

type composeResponse struct {
	RunID      string   `json:"run_id"`
	Preset     string   `json:"preset"`
	Fit        string   `json:"fit"`
	ImageCount int      `json:"image_count"`
	PageCount  int      `json:"page_count"`
	OutputDir  string   `json:"output_dir"`
	Pages      []string `json:"pages"`
	Warnings   []string `json:"warnings,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	var out []presetSummary
	for _, name := range preset.BuiltinNames() {
		p, err := preset.Builtin(name)
		if err != nil {
			continue
		}
		out = append(out, presetSummary{
			Name:        p.Name,
			Description: p.Description,
			Builtin:     true,
			Cells:       len(p.Layout.Cells),
		})
	}

	entries, err := os.ReadDir(s.config.Presets.Dir)
	if err == nil {
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".json" && ext != ".yaml" && ext != ".yml") {
				continue
			}
			p, _, err := preset.Load(filepath.Join(s.config.Presets.Dir, e.Name()))
			if err != nil {
				continue
			}
			out = append(out, presetSummary{
				Name:        p.Name,
				Description: p.Description,
				Cells:       len(p.Layout.Cells),
			})
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"presets": out})
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, warnings, err := preset.Resolve(name, s.config.Presets.Dir)
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"preset":   p,
		"warnings": warnings,
	})
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req composeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if req.InputDir == "" {
		respondError(w, http.StatusBadRequest, errors.New("input_dir is required"))
		return
	}

	presetRef := req.Preset
	if presetRef == "" {
		presetRef = s.config.Presets.Default
	}
	p, warnings, err := preset.Resolve(presetRef, s.config.Presets.Dir)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	fit := req.Fit
	if fit == "" {
		fit = s.config.Compose.FitMode
	}
	mode, err := engine.ParseFitMode(fit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	runID := uuid.NewString()
	result, err := composer.Compose(p, composer.Options{
		InputDir:    req.InputDir,
		OutputDir:   req.OutputDir,
		Mode:        mode,
		NaturalSort: req.NaturalSort,
	})
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	respondJSON(w, http.StatusOK, composeResponse{
		RunID:      runID,
		Preset:     p.Name,
		Fit:        string(mode),
		ImageCount: result.ImageCount,
		PageCount:  result.PageCount,
		OutputDir:  result.OutputDir,
		Pages:      result.Pages,
		Warnings:   warnings,
	})
}

// statusFor maps the engine's error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, preset.ErrInvalidPreset),
		errors.Is(err, engine.ErrUnsupportedFitMode):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrInvalidImage):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
