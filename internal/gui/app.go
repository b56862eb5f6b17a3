// Main editor window wiring the session, processor and widgets together
package gui

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-editor/internal/core"
	"image-editor/internal/io"
	"image-editor/internal/processor"
)

const (
	AppTitle  = "Image Editor (Fyne + OpenCV)"
	startHint = `Tip: Click "Open Image" first. It is recommended to save outputs to the "outputs/" folder.`
)

// Config carries the command line settings into the window.
type Config struct {
	Debug        bool
	OutputDir    string
	InitialImage string
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{OutputDir: io.DefaultOutputDir}
}

// Application is the editor window and its handlers. Every handler runs on
// the Fyne event loop to completion.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger
	config Config

	session *core.Session
	loader  *io.ImageLoader

	toolbar     *Toolbar
	controls    *ControlPanel
	preview     *PreviewPanel
	menuHandler *MenuHandler
	status      *widget.Label
}

func NewApplication(app fyne.App, logger *logrus.Logger, config Config) *Application {
	window := app.NewWindow(AppTitle)
	window.Resize(fyne.NewSize(1100, 650))
	window.CenterOnScreen()

	if config.OutputDir == "" {
		config.OutputDir = io.DefaultOutputDir
	}

	a := &Application{
		app:    app,
		window: window,
		logger: logger,
		config: config,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) initializeCore() {
	a.loader = io.NewImageLoader(a.logger)
	a.session = core.NewSession(a.loader, a.logger)
}

func (a *Application) initializeGUI() {
	a.toolbar = NewToolbar()
	a.controls = NewControlPanel(a.logger)
	a.preview = NewPreviewPanel(a.logger)
	a.menuHandler = NewMenuHandler(a.window)
	a.status = widget.NewLabel(startHint)
	a.status.Truncation = fyne.TextTruncateEllipsis
}

func (a *Application) setupLayout() {
	previewCard := widget.NewCard("Preview", "", a.preview)

	content := container.NewBorder(
		a.toolbar.GetContainer(),  // top
		a.status,                  // bottom
		a.controls.GetContainer(), // left
		nil,                       // right
		container.NewPadded(previewCard),
	)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(content)
}

func (a *Application) setupCallbacks() {
	a.toolbar.SetCallbacks(a.openImage, a.saveImage, a.resetImage, a.applyOperation)
	a.controls.SetCallbacks(a.applyAdjustments, a.applyOperation)
	a.menuHandler.SetCallbacks(a.openImage, a.saveImage, a.resetImage)
	a.menuHandler.RegisterShortcuts()
}

// ShowAndRun opens the window and blocks until it is closed.
func (a *Application) ShowAndRun() {
	a.logger.WithFields(logrus.Fields{
		"debug":   a.config.Debug,
		"outputs": a.config.OutputDir,
	}).Info("Showing main application window")

	if a.config.InitialImage != "" {
		if err := a.LoadImageFromPath(a.config.InitialImage); err != nil {
			a.showError("Error", err)
		}
	}

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.session.Close()
}

// ---------- File operations ----------

func (a *Application) openImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := a.LoadImageFromPath(path); err != nil {
			a.showError("Error", err)
		}
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions))
	fileDialog.Resize(fyne.NewSize(800, 550))
	fileDialog.Show()
}

// LoadImageFromPath loads path into the session and shows it.
func (a *Application) LoadImageFromPath(path string) error {
	if err := a.session.Load(path); err != nil {
		return err
	}

	meta := a.session.Metadata()
	a.window.SetTitle(fmt.Sprintf("%s - %s (%dx%d %s)",
		AppTitle, filepath.Base(path), meta.Width, meta.Height, meta.Format))

	a.controls.ResetSliders()
	a.renderPreview()
	a.setStatus(fmt.Sprintf("Loaded: %s", filepath.Base(path)))
	return nil
}

func (a *Application) saveImage() {
	if !a.requireImage() {
		return
	}

	if err := io.EnsureOutputDir(a.config.OutputDir); err != nil {
		a.showError("Error", err)
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		chosen := writer.URI().Path()
		writer.Close()

		if err := a.saveChosenPath(chosen); err != nil {
			a.showError("Error", err)
		}
	}, a.window)

	suggested := io.DefaultSavePath(a.config.OutputDir)
	fileDialog.SetFileName(filepath.Base(suggested))
	if dir, err := filepath.Abs(filepath.Dir(suggested)); err == nil {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fileDialog.SetLocation(lister)
		}
	}
	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions))
	fileDialog.Resize(fyne.NewSize(800, 550))
	fileDialog.Show()
}

// saveChosenPath saves to the path picked in the save dialog. The dialog has
// already created an empty file at chosen, which is removed unless the image
// was written there.
func (a *Application) saveChosenPath(chosen string) error {
	path := io.WithDefaultExtension(chosen)
	err := a.SaveImageToPath(path)
	if err != nil || path != chosen {
		a.removePlaceholder(chosen)
	}
	return err
}

func (a *Application) removePlaceholder(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > 0 {
		return
	}
	if err := os.Remove(path); err != nil {
		a.logger.WithError(err).WithField("filepath", path).Warn("Failed to remove placeholder file")
	}
}

// SaveImageToPath writes the current image to path.
func (a *Application) SaveImageToPath(path string) error {
	if err := a.session.Save(path); err != nil {
		return err
	}
	a.setStatus(fmt.Sprintf("Saved output: %s", path))
	return nil
}

func (a *Application) resetImage() {
	if !a.session.HasImage() {
		return
	}

	a.session.Reset()
	a.controls.ResetSliders()
	a.renderPreview()
	a.setStatus("Reset to the original image.")
}

// ---------- Features ----------

// applyOperation runs a registered discrete operation and commits it as the
// new base. Grayscale works on the displayed image so pending slider
// adjustments are kept; the other operations start from the committed base.
func (a *Application) applyOperation(name string) {
	if !a.requireImage() {
		return
	}

	op, ok := processor.Get(name)
	if !ok {
		a.showError("Error", fmt.Errorf("unknown operation: %s", name))
		return
	}

	source := core.FromCommitted
	if name == "grayscale" {
		source = core.FromCurrent
	}

	apply := func(m gocv.Mat) (gocv.Mat, error) { return processor.Apply(name, m) }
	if err := a.session.ApplyDiscrete(source, apply); err != nil {
		a.showError("Error", err)
		return
	}

	a.controls.ResetSliders()
	a.renderPreview()
	a.setStatus(fmt.Sprintf("Applied: %s", op.Description))
}

// applyAdjustments recomputes the live preview from the committed base.
func (a *Application) applyAdjustments(kind AdjustmentKind) {
	if !a.requireImage() {
		return
	}

	adj := a.controls.Adjustments()
	if err := a.session.Preview(adj); err != nil {
		a.showError("Error", err)
		return
	}
	a.renderPreview()

	switch kind {
	case AdjustBlur:
		a.setStatus(fmt.Sprintf("Preview: Blur intensity=%d", adj.BlurIntensity))
	case AdjustBrightnessContrast:
		a.setStatus(fmt.Sprintf("Preview: Brightness=%d, Contrast=%.2f", adj.Brightness, adj.Contrast))
	case AdjustScale:
		a.setStatus(fmt.Sprintf("Preview: Scale=%.2f", adj.Scale))
	}
}

// ---------- Helpers ----------

func (a *Application) requireImage() bool {
	if !a.session.HasImage() {
		dialog.ShowInformation("Notice", "Please open an image first.", a.window)
		return false
	}
	return true
}

func (a *Application) renderPreview() {
	current := a.session.Current()
	defer current.Close()

	if current.Empty() {
		a.preview.Clear()
		return
	}

	if err := a.preview.SetImage(current); err != nil {
		a.logger.WithError(err).Error("Failed to convert Mat to image")
	}
}

func (a *Application) setStatus(message string) {
	a.status.SetText(message)
	a.logger.Debug(message)
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.setStatus(fmt.Sprintf("Error: %s", err.Error()))
}
