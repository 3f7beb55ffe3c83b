// Package composer drives a full run: scan a directory of sequential
// images, paginate them over a preset's cells, composite each page and
// persist the results.
package composer

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/image/draw"

	"github.com/kozaktomas/comic-composer/internal/engine"
	"github.com/kozaktomas/comic-composer/internal/output"
	"github.com/kozaktomas/comic-composer/internal/preset"
	"github.com/kozaktomas/comic-composer/internal/scanner"
)

// ProgressInfo is passed to the optional progress callback once per
// placed image and once per written page.
type ProgressInfo struct {
	Phase   string // "placing", "writing"
	Current int    // images consumed so far
	Total   int    // total images in the run
	Page    int    // current page, numbered from 1
	File    string // source image or written page path
}

// Options configure one run. The zero value of a field falls back to a
// sensible default where one is documented.
type Options struct {
	InputDir    string
	OutputDir   string // empty: derived from InputDir plus timestamp
	Mode        engine.FitMode
	Scaler      draw.Scaler // nil: CatmullRom
	NaturalSort bool
	Now         func() time.Time // nil: time.Now, overridable for tests
	OnProgress  func(ProgressInfo)
}

// Result summarizes a completed run.
type Result struct {
	ImageCount int
	PageCount  int
	OutputDir  string
	Pages      []string // written page paths, in page order
}

// Compose runs the whole pipeline for one validated preset. An empty
// input directory produces zero pages and no error. The first
// unrecoverable error (bad preset geometry, unreadable image, failed
// write) aborts the run; already-written pages are left on disk.
func Compose(p *preset.Preset, opts Options) (*Result, error) {
	perPage := len(p.Layout.Cells)
	if perPage == 0 {
		return nil, fmt.Errorf("%w: layout has no cells", preset.ErrInvalidPreset)
	}

	files, err := scanner.List(opts.InputDir, opts.NaturalSort)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ts := now()

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = output.DefaultDir(opts.InputDir, ts)
	}

	result := &Result{
		ImageCount: len(files),
		PageCount:  engine.PageCount(len(files), perPage),
		OutputDir:  outDir,
	}
	if len(files) == 0 {
		return result, nil
	}

	writer := output.NewWriter(outDir)
	for pageIdx, group := range engine.Paginate(files, perPage) {
		pageNum := pageIdx + 1

		imgs := make([]image.Image, 0, len(group))
		for i, path := range group {
			img, err := scanner.Load(path)
			if err != nil {
				return nil, err
			}
			imgs = append(imgs, img)
			report(opts.OnProgress, ProgressInfo{
				Phase:   "placing",
				Current: pageIdx*perPage + i + 1,
				Total:   len(files),
				Page:    pageNum,
				File:    path,
			})
		}

		page, err := engine.ComposePage(p, imgs, engine.ComposeOptions{
			Mode:   opts.Mode,
			Scaler: opts.Scaler,
		})
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}

		path, err := writer.WritePage(page, output.PageName(opts.InputDir, ts, pageNum))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}
		result.Pages = append(result.Pages, path)
		report(opts.OnProgress, ProgressInfo{
			Phase:   "writing",
			Current: pageIdx*perPage + len(group),
			Total:   len(files),
			Page:    pageNum,
			File:    path,
		})
	}
	return result, nil
}

func report(fn func(ProgressInfo), info ProgressInfo) {
	if fn != nil {
		fn(info)
	}
}
