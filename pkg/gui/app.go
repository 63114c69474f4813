// Package gui implements the desktop front-end for Dirflat using the Fyne
// framework: folder selection, document generation, and copy/save actions.
package gui

import (
	"fmt"
	"strings"
	"time"

	"dirflat/pkg/flatten"
	"dirflat/pkg/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	appTitle     = "Directory Content Generator"
	windowWidth  = 800
	windowHeight = 600

	timeFormat = "20060102_150405"

	msgNoContent   = "No content yet. Generate first."
	msgGenSuccess  = "Content generated successfully!"
	msgCopySuccess = "Content copied to clipboard!"
)

// App is the main GUI application. All fields are owned by the UI goroutine;
// background work hands results back through fyne.Do.
type App struct {
	app    fyne.App
	window fyne.Window
	logger *zap.Logger

	store *settings.Store
	cfg   flatten.Config

	folderEntry *widget.Entry
	output      *widget.Entry
	statusLabel *widget.Label

	// Line-count delta tracking for regenerating the same folder.
	prevPath  string
	prevLines int
}

// NewApp creates the application window and loads the persisted settings,
// falling back to defaults when no settings file exists.
func NewApp(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	fyneApp := app.New()
	window := fyneApp.NewWindow(appTitle)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))

	store := settings.NewStore(afero.NewOsFs(), logger)

	a := &App{
		app:         fyneApp,
		window:      window,
		logger:      logger,
		store:       store,
		cfg:         store.Load(settings.DefaultFile),
		statusLabel: widget.NewLabel("Total lines: 0"),
	}

	a.folderEntry = widget.NewEntry()
	a.folderEntry.SetPlaceHolder("Enter folder path...")

	a.output = widget.NewMultiLineEntry()
	a.output.TextStyle = fyne.TextStyle{Monospace: true}
	a.output.Wrapping = fyne.TextWrapOff
	a.output.OnChanged = func(string) { a.updateLineCount() }

	return a
}

// Run starts the application and blocks until the window closes.
func Run(logger *zap.Logger) error {
	a := NewApp(logger)
	a.window.SetContent(a.createMainContent())
	a.window.ShowAndRun()
	return nil
}

// createMainContent creates the main UI layout.
func (a *App) createMainContent() fyne.CanvasObject {
	browseBtn := widget.NewButton("Browse", a.handleBrowse)
	folderRow := container.NewBorder(nil, nil, nil, browseBtn, a.folderEntry)

	buttons := container.NewGridWithColumns(4,
		widget.NewButton("Settings", a.handleSettings),
		widget.NewButton("Generate", a.handleGenerate),
		widget.NewButton("Copy", a.handleCopy),
		widget.NewButton("Save", a.handleSave),
	)

	header := container.NewVBox(folderRow, buttons)
	return container.NewBorder(header, a.statusLabel, nil, nil, a.output)
}

// handleBrowse opens the folder selection dialog.
func (a *App) handleBrowse() {
	folderDialog := dialog.NewFolderOpen(func(folder fyne.ListableURI, err error) {
		if err != nil {
			a.showError("Folder Selection Error", err)
			return
		}
		if folder == nil {
			return // User cancelled
		}
		a.folderEntry.SetText(folder.Path())
	}, a.window)

	folderDialog.Show()
}

// handleGenerate flattens the selected folder off the UI thread and shows
// the resulting document.
func (a *App) handleGenerate() {
	dir := strings.TrimSpace(a.folderEntry.Text)
	flattener := flatten.New(a.cfg, a.logger)

	go func() {
		doc, err := flattener.FlattenDir(dir)

		fyne.Do(func() {
			if err != nil {
				a.logger.Error("Failed to generate content", zap.String("directory", dir), zap.Error(err))
				a.showError("Generate Error", err)
				return
			}

			a.output.SetText(doc.String())
			a.logger.Info("Content generated", zap.String("directory", dir), zap.Int("totalFiles", len(doc.Entries)))
			dialog.ShowInformation("Success", msgGenSuccess, a.window)
		})
	}()
}

// handleSettings shows the configuration dialog and persists accepted
// changes to the settings file.
func (a *App) handleSettings() {
	extsEntry := widget.NewEntry()
	extsEntry.SetText(strings.Join(a.cfg.IncludeExts, ", "))
	extsEntry.SetPlaceHolder("Enter file extensions (e.g., .py, .xml)")

	skipsEntry := widget.NewEntry()
	skipsEntry.SetText(strings.Join(a.cfg.SkipDirs, ", "))
	skipsEntry.SetPlaceHolder("Enter folder names to skip")

	items := []*widget.FormItem{
		widget.NewFormItem("Include file extensions", extsEntry),
		widget.NewFormItem("Skip folders", skipsEntry),
	}

	form := dialog.NewForm("Configuration", "OK", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		a.cfg = flatten.Config{
			IncludeExts: splitList(extsEntry.Text),
			SkipDirs:    splitList(skipsEntry.Text),
		}.Normalize()
		if err := a.store.Save(settings.DefaultFile, a.cfg); err != nil {
			a.showError("Settings Error", err)
		}
	}, a.window)

	form.Resize(fyne.NewSize(500, 200))
	form.Show()
}

// handleCopy copies the generated document to the clipboard.
func (a *App) handleCopy() {
	content := a.output.Text
	if content == "" {
		dialog.ShowInformation("No Data", msgNoContent, a.window)
		return
	}

	a.app.Clipboard().SetContent(content)
	a.logger.Info("Content copied to clipboard")
	dialog.ShowInformation("Success", msgCopySuccess, a.window)
}

// handleSave saves the generated document through a file dialog with a
// timestamped default name.
func (a *App) handleSave() {
	content := a.output.Text
	if content == "" {
		dialog.ShowInformation("No Data", msgNoContent, a.window)
		return
	}

	defaultName := fmt.Sprintf("directory_content_%s.txt", time.Now().Format(timeFormat))

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError("Save Error", err)
			return
		}
		if writer == nil {
			return // User cancelled
		}
		defer writer.Close()

		if _, werr := writer.Write([]byte(content)); werr != nil {
			a.showError("Save Error", werr)
			return
		}

		a.logger.Info("Content saved", zap.String("file", writer.URI().Path()))
		dialog.ShowInformation("Success", "Saved to "+writer.URI().Name(), a.window)
	}, a.window)

	saveDialog.SetFileName(defaultName)
	saveDialog.Show()
}

// updateLineCount refreshes the status bar with the total line count and,
// when regenerating the same folder, the delta against the previous run.
func (a *App) updateLineCount() {
	text := a.output.Text
	path := strings.TrimSpace(a.folderEntry.Text)

	if text == "" {
		a.statusLabel.SetText("Total lines: 0")
		a.prevLines = 0
		return
	}

	lines := strings.Count(text, "\n") + 1
	status := fmt.Sprintf("Total lines: %d", lines)
	if path != "" && path == a.prevPath && a.prevLines > 0 {
		if diff := lines - a.prevLines; diff != 0 {
			status += fmt.Sprintf(" (%+d lines)", diff)
		}
	}

	a.statusLabel.SetText(status)
	a.prevLines = lines
	a.prevPath = path
}

// showError shows an error dialog.
func (a *App) showError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), a.window)
}

// splitList parses a comma-separated input field into its entries.
func splitList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
