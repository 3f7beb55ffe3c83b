package engine

import (
	"fmt"
	"image"
	"math"
)

// FitMode selects how an image is fitted into a cell. One mode applies
// uniformly to every placement in a run.
type FitMode string

const (
	// FitContain scales the image uniformly so it fits entirely inside
	// the cell, centered, with the page background showing through any
	// leftover space.
	FitContain FitMode = "contain"
	// FitCover scales the image uniformly so it fills the cell exactly,
	// cropping the overflowing axis symmetrically.
	FitCover FitMode = "cover"
	// FitStretch fills the cell with independent X/Y scale factors,
	// distorting the aspect ratio.
	FitStretch FitMode = "stretch"
)

// ParseFitMode validates a fit mode token.
func ParseFitMode(s string) (FitMode, error) {
	switch FitMode(s) {
	case FitContain, FitCover, FitStretch:
		return FitMode(s), nil
	}
	return "", fmt.Errorf("%w: %q (supported: contain, cover, stretch)", ErrUnsupportedFitMode, s)
}

// Placement relates one image to one cell: the destination rectangle on
// the page and the source region of the image to draw from.
type Placement struct {
	Dest image.Rectangle
	Src  image.Rectangle
}

// ComputePlacement computes where an image of natural size imgW x imgH
// lands inside cell under the given fit mode. Src is expressed in the
// image's own coordinate space with origin (0, 0); for contain and
// stretch it is always the full image.
func ComputePlacement(imgW, imgH int, cell image.Rectangle, mode FitMode) (Placement, error) {
	if imgW <= 0 || imgH <= 0 {
		return Placement{}, fmt.Errorf("%w: natural size %dx%d", ErrInvalidImage, imgW, imgH)
	}
	full := image.Rect(0, 0, imgW, imgH)
	cw, ch := cell.Dx(), cell.Dy()

	switch mode {
	case FitContain:
		ratio := math.Min(float64(cw)/float64(imgW), float64(ch)/float64(imgH))
		w := int(float64(imgW) * ratio)
		h := int(float64(imgH) * ratio)
		x := cell.Min.X + (cw-w)/2
		y := cell.Min.Y + (ch-h)/2
		return Placement{Dest: image.Rect(x, y, x+w, y+h), Src: full}, nil

	case FitCover:
		ratio := math.Max(float64(cw)/float64(imgW), float64(ch)/float64(imgH))
		cropW := int(float64(cw) / ratio)
		cropH := int(float64(ch) / ratio)
		if cropW > imgW {
			cropW = imgW
		}
		if cropH > imgH {
			cropH = imgH
		}
		sx := (imgW - cropW) / 2
		sy := (imgH - cropH) / 2
		return Placement{
			Dest: cell,
			Src:  image.Rect(sx, sy, sx+cropW, sy+cropH),
		}, nil

	case FitStretch:
		return Placement{Dest: cell, Src: full}, nil
	}

	return Placement{}, fmt.Errorf("%w: %q", ErrUnsupportedFitMode, mode)
}
