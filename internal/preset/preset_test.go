package preset

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const validJSON = `{
  "name": "two-up",
  "description": "two panels side by side",
  "page": {"width": 800, "height": 600, "background_color": "#202020"},
  "layout": {
    "rows": 1,
    "columns": 2,
    "margin": 20,
    "gutter": 20,
    "cells": [
      {"id": 1, "x": 20, "y": 20, "width": 370, "height": 560},
      {"id": 2, "x": 410, "y": 20, "width": 370, "height": 560}
    ]
  }
}`

func TestParse_JSON(t *testing.T) {
	p, err := Parse([]byte(validJSON), "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "two-up" {
		t.Errorf("Name = %q, want two-up", p.Name)
	}
	if p.Page.Width != 800 || p.Page.Height != 600 {
		t.Errorf("page = %dx%d, want 800x600", p.Page.Width, p.Page.Height)
	}
	if len(p.Layout.Cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(p.Layout.Cells))
	}
	if got := p.Layout.Cells[1].Rect(); got != image.Rect(410, 20, 780, 580) {
		t.Errorf("cell 2 rect = %v", got)
	}

	warnings, err := p.Validate()
	if err != nil {
		t.Errorf("Validate() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestParse_BadJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"), "json")
	if !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("error = %v, want ErrInvalidPreset", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	base := func() *Preset {
		p, err := Parse([]byte(validJSON), "json")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		return p
	}

	tests := []struct {
		name    string
		mutate  func(*Preset)
		wantMsg string
	}{
		{
			name:    "missing name",
			mutate:  func(p *Preset) { p.Name = "" },
			wantMsg: "name",
		},
		{
			name:    "zero page width",
			mutate:  func(p *Preset) { p.Page.Width = 0 },
			wantMsg: "width",
		},
		{
			name:    "negative page height",
			mutate:  func(p *Preset) { p.Page.Height = -10 },
			wantMsg: "height",
		},
		{
			name:    "no cells",
			mutate:  func(p *Preset) { p.Layout.Cells = nil },
			wantMsg: "cell",
		},
		{
			name:    "zero cell width",
			mutate:  func(p *Preset) { p.Layout.Cells[0].Width = 0 },
			wantMsg: "non-positive",
		},
		{
			name:    "cell outside page",
			mutate:  func(p *Preset) { p.Layout.Cells[1].X = 700 },
			wantMsg: "outside",
		},
		{
			name:    "duplicate cell id",
			mutate:  func(p *Preset) { p.Layout.Cells[1].ID = 1 },
			wantMsg: "duplicate",
		},
		{
			name:    "bad background color",
			mutate:  func(p *Preset) { p.Page.BackgroundColor = "chartreuse-ish" },
			wantMsg: "color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(p)
			_, err := p.Validate()
			if !errors.Is(err, ErrInvalidPreset) {
				t.Fatalf("error = %v, want ErrInvalidPreset", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidate_GridMismatchIsWarning(t *testing.T) {
	p, err := Parse([]byte(validJSON), "json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p.Layout.Rows = 3 // declares 3x2=6 but only 2 cells exist

	warnings, err := p.Validate()
	if err != nil {
		t.Fatalf("mismatch must not be an error, got: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if !strings.Contains(warnings[0], "6 cells") && !strings.Contains(warnings[0], "2 cells") {
		t.Errorf("warning %q does not describe the mismatch", warnings[0])
	}
}

func TestBackground_DefaultsToWhite(t *testing.T) {
	p, err := Parse([]byte(validJSON), "json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p.Page.BackgroundColor = ""

	c, err := p.Background()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("default background = %v, want white", c)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#fff", want: color.RGBA{255, 255, 255, 255}},
		{in: "#FF0000", want: color.RGBA{255, 0, 0, 255}},
		{in: "#1a2b3c", want: color.RGBA{0x1a, 0x2b, 0x3c, 255}},
		{in: "black", want: color.RGBA{0, 0, 0, 255}},
		{in: "White", want: color.RGBA{255, 255, 255, 255}},
		{in: " cornflowerblue ", want: color.RGBA{100, 149, 237, 255}},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "nosuchcolor", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPreset) {
					t.Errorf("error = %v, want ErrInvalidPreset", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	yamlPreset := `
name: yaml-strip
description: single wide panel
page:
  width: 400
  height: 200
  background_color: black
layout:
  rows: 1
  columns: 1
  margin: 10
  gutter: 0
  cells:
    - id: 1
      x: 10
      y: 10
      width: 380
      height: 180
`
	path := filepath.Join(t.TempDir(), "strip.yaml")
	if err := os.WriteFile(path, []byte(yamlPreset), 0o644); err != nil {
		t.Fatal(err)
	}

	p, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if p.Name != "yaml-strip" || len(p.Layout.Cells) != 1 {
		t.Errorf("unexpected preset: %+v", p)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuiltins(t *testing.T) {
	names := BuiltinNames()
	for _, want := range []string{"2col", "grid4", "strip3"} {
		if !slices.Contains(names, want) {
			t.Errorf("built-ins %v missing %q", names, want)
		}
	}

	for _, name := range names {
		p, err := Builtin(name)
		if err != nil {
			t.Fatalf("Builtin(%q): %v", name, err)
		}
		if warnings, err := p.Validate(); err != nil || len(warnings) != 0 {
			t.Errorf("built-in %q must validate cleanly, got warnings=%v err=%v", name, warnings, err)
		}
	}

	p, err := Builtin("2col")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Layout.Cells) != 6 {
		t.Errorf("2col has %d cells, want 6", len(p.Layout.Cells))
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	if err := os.WriteFile(path, []byte(validJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("file path", func(t *testing.T) {
		p, _, err := Resolve(path, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "two-up" {
			t.Errorf("Name = %q", p.Name)
		}
	})

	t.Run("name in search dir", func(t *testing.T) {
		p, _, err := Resolve("custom", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "two-up" {
			t.Errorf("Name = %q", p.Name)
		}
	})

	t.Run("built-in name", func(t *testing.T) {
		p, _, err := Resolve("grid4", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(p.Layout.Cells) != 4 {
			t.Errorf("grid4 has %d cells", len(p.Layout.Cells))
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := Resolve("does-not-exist", dir)
		if !errors.Is(err, ErrInvalidPreset) {
			t.Errorf("error = %v, want ErrInvalidPreset", err)
		}
	})
}
