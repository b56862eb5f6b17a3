// Image operations delegating to OpenCV
package processor

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

var (
	// ErrInvalidArgument is returned for parameters outside an operation's domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyImage is returned when an operation receives an empty Mat.
	ErrEmptyImage = errors.New("input image is empty")
)

// Canny thresholds used by the edge detection action.
const (
	DefaultCannyLow  = 80
	DefaultCannyHigh = 160
)

func checkInput(input gocv.Mat) error {
	if input.Empty() {
		return ErrEmptyImage
	}
	return nil
}

// Grayscale converts a BGR image to gray and back so the result keeps three
// identical channels.
func Grayscale(input gocv.Mat) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(input, &gray, gocv.ColorBGRToGray); err != nil {
		return gocv.NewMat(), fmt.Errorf("grayscale conversion failed: %w", err)
	}

	return grayToBGR(gray)
}

// CannyEdges runs the Canny detector on the gray version of input with the
// default thresholds.
func CannyEdges(input gocv.Mat) (gocv.Mat, error) {
	return CannyEdgesWithThresholds(input, DefaultCannyLow, DefaultCannyHigh)
}

// CannyEdgesWithThresholds is CannyEdges with explicit hysteresis thresholds.
func CannyEdgesWithThresholds(input gocv.Mat, low, high float32) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if low < 0 || high < low {
		return gocv.NewMat(), fmt.Errorf("%w: canny thresholds %v/%v", ErrInvalidArgument, low, high)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if input.Channels() == 1 {
		if err := input.CopyTo(&gray); err != nil {
			return gocv.NewMat(), fmt.Errorf("edge detection failed: %w", err)
		}
	} else if err := gocv.CvtColor(input, &gray, gocv.ColorBGRToGray); err != nil {
		return gocv.NewMat(), fmt.Errorf("edge detection failed: %w", err)
	}

	edges := gocv.NewMat()
	defer edges.Close()
	if err := gocv.Canny(gray, &edges, low, high); err != nil {
		return gocv.NewMat(), fmt.Errorf("canny failed: %w", err)
	}

	return grayToBGR(edges)
}

func grayToBGR(gray gocv.Mat) (gocv.Mat, error) {
	output := gocv.NewMat()
	if err := gocv.CvtColor(gray, &output, gocv.ColorGrayToBGR); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("gray to BGR conversion failed: %w", err)
	}
	return output, nil
}
