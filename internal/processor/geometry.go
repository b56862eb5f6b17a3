// Geometric operations: rotation, flip and rescaling
package processor

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Flip modes accepted by Flip.
const (
	FlipHorizontal = "horizontal"
	FlipVertical   = "vertical"
)

// Rotate turns input clockwise by 90, 180 or 270 degrees.
func Rotate(input gocv.Mat, angle int) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}

	var code gocv.RotateFlag
	switch angle {
	case 90:
		code = gocv.Rotate90Clockwise
	case 180:
		code = gocv.Rotate180Clockwise
	case 270:
		code = gocv.Rotate90CounterClockwise
	default:
		return gocv.NewMat(), fmt.Errorf("%w: only 90, 180 and 270 degree rotations are supported, got %d",
			ErrInvalidArgument, angle)
	}

	output := gocv.NewMat()
	if err := gocv.Rotate(input, &output, code); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("rotation by %d failed: %w", angle, err)
	}
	return output, nil
}

// Flip mirrors input around the vertical axis ("horizontal") or the
// horizontal axis ("vertical").
func Flip(input gocv.Mat, mode string) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}

	var code int
	switch mode {
	case FlipHorizontal:
		code = 1
	case FlipVertical:
		code = 0
	default:
		return gocv.NewMat(), fmt.Errorf("%w: flip mode must be %q or %q, got %q",
			ErrInvalidArgument, FlipHorizontal, FlipVertical, mode)
	}

	output := gocv.NewMat()
	if err := gocv.Flip(input, &output, code); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("flip %s failed: %w", mode, err)
	}
	return output, nil
}

// ScaledSize returns the output dimensions for scaling a width x height image.
func ScaledSize(width, height int, scale float64) image.Point {
	return image.Point{
		X: max(1, int(math.Round(float64(width)*scale))),
		Y: max(1, int(math.Round(float64(height)*scale))),
	}
}

// ResizeScale resizes input by scale, using area interpolation when shrinking
// and cubic interpolation otherwise.
func ResizeScale(input gocv.Mat, scale float64) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if math.IsNaN(scale) || scale < MinScale-identityTolerance || scale > MaxScale+identityTolerance {
		return gocv.NewMat(), fmt.Errorf("%w: scale %.2f outside %.1f..%.1f",
			ErrInvalidArgument, scale, MinScale, MaxScale)
	}

	size := ScaledSize(input.Cols(), input.Rows(), scale)
	interp := gocv.InterpolationCubic
	if scale < 1 {
		interp = gocv.InterpolationArea
	}

	output := gocv.NewMat()
	if err := gocv.Resize(input, &output, size, 0, 0, interp); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("resize to %dx%d failed: %w", size.X, size.Y, err)
	}
	return output, nil
}
