package skyline

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned for non-positive or non-finite canvas sizes.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	overscan = 50.0 // buildings extend this far past both canvas edges

	minWidth    = 40.0
	widthRange  = 60.0
	minHeight   = 100.0
	heightRange = 300.0
	minDepth    = 10.0
	depthRange  = 30.0

	minDensity   = 0.85
	densityRange = 0.1

	minAnimDuration   = 2.0 // seconds
	animDurationRange = 4.0
	animDelayRange    = 5.0

	WindowSize  = 3.0
	WindowGap   = 4.0
	windowPitch = WindowSize + WindowGap

	frontInsetX = 5.0
	sideInsetX  = 2.0
	insetTop    = 10.0
	rowMargin   = 20.0 // height - rowMargin is the usable window span
	frontMargin = 10.0
	sideMargin  = 5.0

	minSideFactor  = 0.2
	sideFactorGain = 0.8

	seamOverlap = 2.0
)

// Options tunes generation. The zero value reproduces the reference skyline.
type Options struct {
	// ClampPerspective limits the perspective factor to [0,1]. Buildings in
	// the overscan margins otherwise get a factor slightly above 1.
	ClampPerspective bool
}

// Generate synthesizes a left-to-right row of buildings covering
// [-50, canvasWidth+50). A nil rng uses DefaultSource.
func Generate(canvasWidth, canvasHeight float64, rng Source) ([]Building, error) {
	return Options{}.Generate(canvasWidth, canvasHeight, rng)
}

// Generate is like the package-level Generate but honors o.
func (o Options) Generate(canvasWidth, canvasHeight float64, rng Source) ([]Building, error) {
	if err := checkDimension("canvas width", canvasWidth); err != nil {
		return nil, err
	}
	if err := checkDimension("canvas height", canvasHeight); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultSource()
	}

	centerX := canvasWidth / 2
	var buildings []Building

	for x := -overscan; x < canvasWidth+overscan; {
		w := minWidth + rng.Float64()*widthRange
		h := minHeight + rng.Float64()*heightRange
		depth := minDepth + rng.Float64()*depthRange

		distToCenter := x + w/2 - centerX
		side := SideLeft
		if distToCenter < 0 {
			side = SideRight
		}
		factor := math.Abs(distToCenter) / centerX
		if o.ClampPerspective {
			factor = math.Min(factor, 1)
		}
		psw := ProjectedSideWidth(depth, factor)
		if math.IsInf(psw, 0) {
			return nil, fmt.Errorf("%w: canvas width %v too small for a finite perspective", ErrInvalidArgument, canvasWidth)
		}

		b := Building{
			X:                  x,
			GroundY:            canvasHeight,
			Width:              w,
			Height:             h,
			Depth:              depth,
			SideVisible:        side,
			ProjectedSideWidth: psw,
			StackOrder:         int(math.Floor(h)),
		}

		rows := gridCount(h, rowMargin)
		frontCols := gridCount(w, frontMargin)
		sideCols := gridCount(depth, sideMargin)
		density := minDensity + rng.Float64()*densityRange

		b.FrontWindows = []WindowSpec{}
		for r := 0; r < rows; r++ {
			for c := 0; c < frontCols; c++ {
				if rng.Float64() <= density {
					continue
				}
				b.FrontWindows = append(b.FrontWindows, WindowSpec{
					OffsetX:      frontInsetX + float64(c)*windowPitch,
					OffsetY:      insetTop + float64(r)*windowPitch,
					Size:         WindowSize,
					AnimDuration: minAnimDuration + rng.Float64()*animDurationRange,
					AnimDelay:    rng.Float64() * animDelayRange,
				})
			}
		}

		b.SideWindows = []SideWindowSpec{}
		for r := 0; r < rows; r++ {
			for c := 0; c < sideCols; c++ {
				if rng.Float64() <= density {
					continue
				}
				win := SideWindowSpec{
					OffsetX:      sideInsetX + float64(c)*windowPitch,
					OffsetY:      insetTop + float64(r)*windowPitch,
					Size:         WindowSize,
					AnimDuration: minAnimDuration + rng.Float64()*animDurationRange,
					AnimDelay:    rng.Float64() * animDelayRange,
				}
				// The sheared face can push low windows past the ground line.
				if ProjectSideWindow(b, win).MaxY() > b.GroundY {
					continue
				}
				b.SideWindows = append(b.SideWindows, win)
			}
		}

		buildings = append(buildings, b)
		x += w + b.ProjectedSideWidth*0.5 - seamOverlap
	}

	return buildings, nil
}

// ProjectedSideWidth is the foreshortened width of a side face of the given
// depth at the given perspective factor.
func ProjectedSideWidth(depth, perspectiveFactor float64) float64 {
	return depth * (minSideFactor + perspectiveFactor*sideFactorGain)
}

func gridCount(extent, margin float64) int {
	n := int(math.Floor((extent - margin) / windowPitch))
	if n < 0 {
		return 0
	}
	return n
}

func checkDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidArgument, name, v)
	}
	return nil
}
