// Preview widget showing the current image fitted to the available space
package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

const (
	minPreviewSide   = 200
	previewPadWidth  = 40
	previewPadHeight = 60
)

// PreviewPanel displays the current image. It keeps the full-resolution
// source so it can refit the displayed copy when its size changes; the
// displayed copy stays referenced by the canvas image until the next render
// replaces it.
type PreviewPanel struct {
	widget.BaseWidget

	logger *logrus.Logger

	source   image.Image
	image    *canvas.Image
	hint     *canvas.Text
	lastSize fyne.Size
}

func NewPreviewPanel(logger *logrus.Logger) *PreviewPanel {
	p := &PreviewPanel{
		logger: logger,
		image:  canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
		hint:   canvas.NewText("No image loaded", color.Gray{Y: 128}),
	}
	p.image.FillMode = canvas.ImageFillContain
	p.image.ScaleMode = canvas.ImageScaleSmooth
	p.hint.Alignment = fyne.TextAlignCenter

	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer creates the renderer for the preview
func (p *PreviewPanel) CreateRenderer() fyne.WidgetRenderer {
	return &previewRenderer{panel: p}
}

// SetImage converts mat for display and renders it at the current size.
func (p *PreviewPanel) SetImage(mat gocv.Mat) error {
	img, err := mat.ToImage()
	if err != nil {
		return err
	}

	p.source = img
	p.hint.Hide()
	p.render(p.Size())
	return nil
}

// Clear drops the displayed image.
func (p *PreviewPanel) Clear() {
	p.source = nil
	p.image.Image = image.NewRGBA(image.Rect(0, 0, 1, 1))
	p.image.Refresh()
	p.hint.Show()
}

// Displayed returns the image currently on screen, nil when empty.
func (p *PreviewPanel) Displayed() image.Image {
	if p.source == nil {
		return nil
	}
	return p.image.Image
}

func (p *PreviewPanel) render(size fyne.Size) {
	p.lastSize = size
	if p.source == nil {
		return
	}

	maxW, maxH := PreviewBounds(size)
	p.image.Image = FitPreview(p.source, maxW, maxH)
	p.placeImage(size)
	p.image.Refresh()

	p.logger.WithFields(logrus.Fields{
		"width":  p.image.Image.Bounds().Dx(),
		"height": p.image.Image.Bounds().Dy(),
	}).Debug("Preview rendered")
}

// placeImage shows the fitted image at its own pixel size, centred in a
// panel of the given size. FillContain only applies when the panel is
// smaller than the minimum preview box.
func (p *PreviewPanel) placeImage(size fyne.Size) {
	b := p.image.Image.Bounds()
	w := min(float32(b.Dx()), size.Width)
	h := min(float32(b.Dy()), size.Height)
	p.image.Resize(fyne.NewSize(w, h))
	p.image.Move(fyne.NewPos((size.Width-w)/2, (size.Height-h)/2))
}

// PreviewBounds returns the box the preview is fitted into for a panel of
// the given size.
func PreviewBounds(size fyne.Size) (int, int) {
	return max(minPreviewSide, int(size.Width)-previewPadWidth),
		max(minPreviewSide, int(size.Height)-previewPadHeight)
}

// FitPreview scales img down to fit maxW x maxH keeping its aspect ratio.
// Images that already fit are returned at their own size.
func FitPreview(img image.Image, maxW, maxH int) image.Image {
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

type previewRenderer struct {
	panel *PreviewPanel
}

func (r *previewRenderer) Layout(size fyne.Size) {
	r.panel.hint.Resize(size)
	r.panel.hint.Move(fyne.NewPos(0, 0))

	if size != r.panel.lastSize {
		r.panel.render(size)
	}
	r.panel.placeImage(size)
}

func (r *previewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(minPreviewSide, minPreviewSide)
}

func (r *previewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.panel.image, r.panel.hint}
}

func (r *previewRenderer) Refresh() {
	r.panel.image.Refresh()
	r.panel.hint.Refresh()
}

func (r *previewRenderer) Destroy() {
}
