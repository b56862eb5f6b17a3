// Top toolbar: file actions and the whole-image filters
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"image-editor/internal/processor"
)

type Toolbar struct {
	container *fyne.Container

	openBtn  *widget.Button
	saveBtn  *widget.Button
	resetBtn *widget.Button

	// filter buttons keyed by operation name
	filterButtons map[string]*widget.Button

	onOpen      func()
	onSave      func()
	onReset     func()
	onOperation func(name string)
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.initializeUI()
	return toolbar
}

func (tb *Toolbar) initializeUI() {
	tb.openBtn = widget.NewButtonWithIcon("Open Image", theme.FolderOpenIcon(), func() {
		if tb.onOpen != nil {
			tb.onOpen()
		}
	})
	tb.openBtn.Importance = widget.HighImportance

	tb.saveBtn = widget.NewButtonWithIcon("Save Output", theme.DocumentSaveIcon(), func() {
		if tb.onSave != nil {
			tb.onSave()
		}
	})

	tb.resetBtn = widget.NewButtonWithIcon("Reset to Original", theme.ViewRefreshIcon(), func() {
		if tb.onReset != nil {
			tb.onReset()
		}
	})

	tb.container = container.NewHBox(
		tb.openBtn,
		tb.saveBtn,
		tb.resetBtn,
		widget.NewSeparator(),
	)

	tb.filterButtons = make(map[string]*widget.Button)
	for _, op := range processor.ByGroup(processor.GroupFilter) {
		btn := tb.operationButton(op)
		tb.filterButtons[op.Name] = btn
		tb.container.Add(btn)
	}
}

func (tb *Toolbar) operationButton(op processor.Operation) *widget.Button {
	return widget.NewButton(op.Label, func() {
		if tb.onOperation != nil {
			tb.onOperation(op.Name)
		}
	})
}

func (tb *Toolbar) GetContainer() fyne.CanvasObject {
	return container.NewPadded(tb.container)
}

func (tb *Toolbar) SetCallbacks(onOpen, onSave, onReset func(), onOperation func(string)) {
	tb.onOpen = onOpen
	tb.onSave = onSave
	tb.onReset = onReset
	tb.onOperation = onOperation
}
