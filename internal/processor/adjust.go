// Slider-driven adjustments: blur, brightness, contrast and scale
package processor

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Parameter domains of the preview adjustments.
const (
	MinBlurIntensity = 0
	MaxBlurIntensity = 20

	MinBrightness = -100
	MaxBrightness = 100

	MinContrast = 0.2
	MaxContrast = 3.0

	MinScale = 0.1
	MaxScale = 2.0
)

const identityTolerance = 1e-6

// BlurKernelSize maps a blur intensity to an odd Gaussian kernel size.
func BlurKernelSize(intensity int) int {
	if intensity < 0 {
		intensity = 0
	}
	return intensity*2 + 1
}

// GaussianBlur blurs input with a square kernel of size 2*intensity+1.
// Intensity 0 returns an unchanged copy.
func GaussianBlur(input gocv.Mat, intensity int) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if intensity < MinBlurIntensity || intensity > MaxBlurIntensity {
		return gocv.NewMat(), fmt.Errorf("%w: blur intensity %d outside %d..%d",
			ErrInvalidArgument, intensity, MinBlurIntensity, MaxBlurIntensity)
	}
	if intensity == 0 {
		return input.Clone(), nil
	}

	k := BlurKernelSize(intensity)
	output := gocv.NewMat()
	if err := gocv.GaussianBlur(input, &output, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("gaussian blur failed: %w", err)
	}
	return output, nil
}

// AdjustBrightness adds beta to every channel, saturating at 0 and 255.
func AdjustBrightness(input gocv.Mat, beta int) (gocv.Mat, error) {
	if beta < MinBrightness || beta > MaxBrightness {
		return gocv.NewMat(), fmt.Errorf("%w: brightness %d outside %d..%d",
			ErrInvalidArgument, beta, MinBrightness, MaxBrightness)
	}
	return scaleChannels(input, 1.0, float64(beta))
}

// AdjustContrast multiplies every channel by alpha, saturating at 255.
func AdjustContrast(input gocv.Mat, alpha float64) (gocv.Mat, error) {
	if math.IsNaN(alpha) || alpha < MinContrast-identityTolerance || alpha > MaxContrast+identityTolerance {
		return gocv.NewMat(), fmt.Errorf("%w: contrast %.2f outside %.1f..%.1f",
			ErrInvalidArgument, alpha, MinContrast, MaxContrast)
	}
	return scaleChannels(input, alpha, 0)
}

// scaleChannels computes saturate(x*alpha + beta) per channel. ConvertScaleAbs
// is avoided since it mirrors negative values instead of clamping them.
func scaleChannels(input gocv.Mat, alpha, beta float64) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	if err := input.ConvertToWithParams(&output, gocv.MatTypeCV8U, float32(alpha), float32(beta)); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("linear transform failed: %w", err)
	}
	return output, nil
}

// Adjustments is the state of the preview sliders.
type Adjustments struct {
	BlurIntensity int
	Brightness    int
	Contrast      float64
	Scale         float64
}

// DefaultAdjustments returns the slider positions that leave an image untouched.
func DefaultAdjustments() Adjustments {
	return Adjustments{
		BlurIntensity: 0,
		Brightness:    0,
		Contrast:      1.0,
		Scale:         1.0,
	}
}

func (a Adjustments) hasContrast() bool {
	return math.Abs(a.Contrast-1.0) > identityTolerance
}

func (a Adjustments) hasScale() bool {
	return math.Abs(a.Scale-1.0) > identityTolerance
}

// IsIdentity reports whether applying a would return the base unchanged.
func (a Adjustments) IsIdentity() bool {
	return a.BlurIntensity == 0 && a.Brightness == 0 && !a.hasContrast() && !a.hasScale()
}

// Apply recomputes the adjusted image from base in the order blur, contrast,
// brightness, scale. Stages at their neutral value are skipped.
func (a Adjustments) Apply(base gocv.Mat) (gocv.Mat, error) {
	if err := checkInput(base); err != nil {
		return gocv.NewMat(), err
	}

	img := base.Clone()

	step := func(name string, fn func(gocv.Mat) (gocv.Mat, error)) error {
		next, err := fn(img)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		img.Close()
		img = next
		return nil
	}

	var err error
	if a.BlurIntensity > 0 {
		err = step("blur", func(m gocv.Mat) (gocv.Mat, error) { return GaussianBlur(m, a.BlurIntensity) })
	}
	if err == nil && a.hasContrast() {
		err = step("contrast", func(m gocv.Mat) (gocv.Mat, error) { return AdjustContrast(m, a.Contrast) })
	}
	if err == nil && a.Brightness != 0 {
		err = step("brightness", func(m gocv.Mat) (gocv.Mat, error) { return AdjustBrightness(m, a.Brightness) })
	}
	if err == nil && a.hasScale() {
		err = step("scale", func(m gocv.Mat) (gocv.Mat, error) { return ResizeScale(m, a.Scale) })
	}
	if err != nil {
		img.Close()
		return gocv.NewMat(), err
	}

	return img, nil
}

func (a Adjustments) String() string {
	return fmt.Sprintf("blur=%d brightness=%d contrast=%.2f scale=%.2f",
		a.BlurIntensity, a.Brightness, a.Contrast, a.Scale)
}
