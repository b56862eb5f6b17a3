// Menu handler for application actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// MenuHandler builds the main menu and keyboard shortcuts
type MenuHandler struct {
	window fyne.Window

	onOpen  func()
	onSave  func()
	onReset func()
}

func NewMenuHandler(window fyne.Window) *MenuHandler {
	return &MenuHandler{
		window: window,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.call(&mh.onOpen)),
		fyne.NewMenuItem("Save Output...", mh.call(&mh.onSave)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Reset to Original", mh.call(&mh.onReset)),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

// shortcutTarget is implemented by fyne.Canvas and *fyne.ShortcutHandler.
type shortcutTarget interface {
	AddShortcut(shortcut fyne.Shortcut, handler func(shortcut fyne.Shortcut))
}

// RegisterShortcuts binds Ctrl+O and Ctrl+S (Cmd on macOS) to open and save.
func (mh *MenuHandler) RegisterShortcuts() {
	mh.addShortcuts(mh.window.Canvas())
}

func (mh *MenuHandler) addShortcuts(target shortcutTarget) {
	target.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { mh.call(&mh.onOpen)() })
	target.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { mh.call(&mh.onSave)() })
}

// call defers the lookup so callbacks set after the menu was built still fire.
func (mh *MenuHandler) call(fn *func()) func() {
	return func() {
		if *fn != nil {
			(*fn)()
		}
	}
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel(AppTitle),
		widget.NewSeparator(),
		widget.NewLabel("Open an image, adjust it with a live preview"),
		widget.NewLabel("and save the result."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(360, 220))
	aboutDialog.Show()
}

func (mh *MenuHandler) SetCallbacks(onOpen, onSave, onReset func()) {
	mh.onOpen = onOpen
	mh.onSave = onSave
	mh.onReset = onReset
}
