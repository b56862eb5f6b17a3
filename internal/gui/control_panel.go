// Left-hand controls: adjustment sliders, rotation, flip and scale
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-editor/internal/processor"
)

// AdjustmentKind tells which slider triggered a preview update.
type AdjustmentKind int

const (
	AdjustBlur AdjustmentKind = iota
	AdjustBrightnessContrast
	AdjustScale
)

type ControlPanel struct {
	logger *logrus.Logger

	container *widget.Card

	blurSlider       *widget.Slider
	brightnessSlider *widget.Slider
	contrastSlider   *widget.Slider
	scaleSlider      *widget.Slider

	blurLabel       *widget.Label
	brightnessLabel *widget.Label
	contrastLabel   *widget.Label
	scaleLabel      *widget.Label

	rotateButtons []*widget.Button
	flipButtons   []*widget.Button
	applyScaleBtn *widget.Button

	// set while sliders are moved programmatically
	resetting bool

	onAdjust    func(AdjustmentKind)
	onOperation func(name string)
}

func NewControlPanel(logger *logrus.Logger) *ControlPanel {
	panel := &ControlPanel{
		logger: logger,
	}

	panel.initializeUI()
	return panel
}

func (cp *ControlPanel) initializeUI() {
	cp.blurLabel = widget.NewLabel("")
	cp.blurSlider = widget.NewSlider(processor.MinBlurIntensity, processor.MaxBlurIntensity)
	cp.blurSlider.Step = 1

	cp.brightnessLabel = widget.NewLabel("")
	cp.brightnessSlider = widget.NewSlider(processor.MinBrightness, processor.MaxBrightness)
	cp.brightnessSlider.Step = 1

	cp.contrastLabel = widget.NewLabel("")
	cp.contrastSlider = widget.NewSlider(processor.MinContrast, processor.MaxContrast)
	cp.contrastSlider.Step = 0.01

	cp.scaleLabel = widget.NewLabel("")
	cp.scaleSlider = widget.NewSlider(processor.MinScale, processor.MaxScale)
	cp.scaleSlider.Step = 0.01

	cp.ResetSliders()

	cp.blurSlider.OnChanged = func(float64) { cp.sliderChanged(AdjustBlur) }
	cp.brightnessSlider.OnChanged = func(float64) { cp.sliderChanged(AdjustBrightnessContrast) }
	cp.contrastSlider.OnChanged = func(float64) { cp.sliderChanged(AdjustBrightnessContrast) }
	cp.scaleSlider.OnChanged = func(float64) { cp.sliderChanged(AdjustScale) }

	for _, op := range processor.ByGroup(processor.GroupRotate) {
		cp.rotateButtons = append(cp.rotateButtons, cp.operationButton(op))
	}
	for _, op := range processor.ByGroup(processor.GroupFlip) {
		cp.flipButtons = append(cp.flipButtons, cp.operationButton(op))
	}

	cp.applyScaleBtn = widget.NewButton("Apply Scale", func() {
		cp.fireAdjust(AdjustScale)
	})

	rotateRow := container.NewHBox()
	for _, btn := range cp.rotateButtons {
		rotateRow.Add(btn)
	}
	flipRow := container.NewHBox()
	for _, btn := range cp.flipButtons {
		flipRow.Add(btn)
	}

	content := container.NewVBox(
		cp.blurLabel,
		cp.blurSlider,
		cp.brightnessLabel,
		cp.brightnessSlider,
		cp.contrastLabel,
		cp.contrastSlider,
		widget.NewSeparator(),
		widget.NewLabel("Rotate"),
		rotateRow,
		widget.NewLabel("Flip"),
		flipRow,
		widget.NewSeparator(),
		cp.scaleLabel,
		cp.scaleSlider,
		cp.applyScaleBtn,
	)

	cp.container = widget.NewCard("Controls", "", container.NewVScroll(content))
}

func (cp *ControlPanel) operationButton(op processor.Operation) *widget.Button {
	return widget.NewButton(op.Label, func() {
		if cp.onOperation != nil {
			cp.onOperation(op.Name)
		}
	})
}

func (cp *ControlPanel) sliderChanged(kind AdjustmentKind) {
	cp.updateLabels()
	if cp.resetting {
		return
	}
	cp.logger.WithField("adjustments", cp.Adjustments().String()).Debug("Slider moved")
	cp.fireAdjust(kind)
}

func (cp *ControlPanel) fireAdjust(kind AdjustmentKind) {
	if cp.onAdjust != nil {
		cp.onAdjust(kind)
	}
}

func (cp *ControlPanel) updateLabels() {
	adj := cp.Adjustments()
	cp.blurLabel.SetText(fmt.Sprintf("Blur Intensity (Gaussian): %d", adj.BlurIntensity))
	cp.brightnessLabel.SetText(fmt.Sprintf("Brightness (-100 ~ +100): %d", adj.Brightness))
	cp.contrastLabel.SetText(fmt.Sprintf("Contrast (0.2 ~ 3.0): %.2f", adj.Contrast))
	cp.scaleLabel.SetText(fmt.Sprintf("Scale (0.1 ~ 2.0): %.2f", adj.Scale))
}

// Adjustments reads the slider positions.
func (cp *ControlPanel) Adjustments() processor.Adjustments {
	return processor.Adjustments{
		BlurIntensity: int(cp.blurSlider.Value),
		Brightness:    int(cp.brightnessSlider.Value),
		Contrast:      cp.contrastSlider.Value,
		Scale:         cp.scaleSlider.Value,
	}
}

// ResetSliders moves every slider back to its neutral position without
// triggering a preview.
func (cp *ControlPanel) ResetSliders() {
	cp.resetting = true
	defer func() { cp.resetting = false }()

	def := processor.DefaultAdjustments()
	cp.blurSlider.SetValue(float64(def.BlurIntensity))
	cp.brightnessSlider.SetValue(float64(def.Brightness))
	cp.contrastSlider.SetValue(def.Contrast)
	cp.scaleSlider.SetValue(def.Scale)
	cp.updateLabels()
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

func (cp *ControlPanel) SetCallbacks(onAdjust func(AdjustmentKind), onOperation func(string)) {
	cp.onAdjust = onAdjust
	cp.onOperation = onOperation
}
