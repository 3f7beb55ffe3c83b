package engine

import (
	"fmt"
	"image"
	stddraw "image/draw"

	"golang.org/x/image/draw"

	"github.com/kozaktomas/comic-composer/internal/preset"
)

// Scalers available for drawing images into cells. CatmullRom is the
// default; it is the closest x/image analog to the Lanczos resampling
// commonly used for downscaling photos.
var scalers = map[string]draw.Scaler{
	"catmullrom": draw.CatmullRom,
	"bilinear":   draw.BiLinear,
	"approx":     draw.ApproxBiLinear,
	"nearest":    draw.NearestNeighbor,
}

// ParseScaler returns the named scaler, or an error listing the choices.
func ParseScaler(name string) (draw.Scaler, error) {
	if s, ok := scalers[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown scale filter %q (supported: catmullrom, bilinear, approx, nearest)", name)
}

// ComposeOptions configure page composition for a run.
type ComposeOptions struct {
	Mode   FitMode
	Scaler draw.Scaler // nil means CatmullRom
}

// ComposePage renders one page: a canvas of the preset's page size and
// background with imgs placed into cells in template order. The i-th
// image goes into the i-th cell; when imgs is shorter than the cell list
// the remaining cells stay background-only. Inputs are not mutated.
func ComposePage(p *preset.Preset, imgs []image.Image, opts ComposeOptions) (*image.RGBA, error) {
	bg, err := p.Background()
	if err != nil {
		return nil, err
	}
	scaler := opts.Scaler
	if scaler == nil {
		scaler = draw.CatmullRom
	}

	canvas := image.NewRGBA(p.Bounds())
	stddraw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, stddraw.Src)

	for i, cell := range p.Layout.Cells {
		if i >= len(imgs) {
			break
		}
		img := imgs[i]
		b := img.Bounds()
		pl, err := ComputePlacement(b.Dx(), b.Dy(), cell.Rect(), opts.Mode)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", cell.ID, err)
		}
		// Placement.Src has origin (0, 0); shift into the image's own
		// coordinate space before drawing.
		sr := pl.Src.Add(b.Min)
		scaler.Scale(canvas, pl.Dest, img, sr, draw.Over, nil)
	}
	return canvas, nil
}
