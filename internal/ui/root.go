package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/quickpapers/internal/app"
	"github.com/ytget/quickpapers/internal/config"
	"github.com/ytget/quickpapers/internal/download"
	"github.com/ytget/quickpapers/internal/history"
	"github.com/ytget/quickpapers/internal/model"
	"github.com/ytget/quickpapers/internal/paper"
	"github.com/ytget/quickpapers/internal/platform"
)

// MinSubjectHintLength is the subject code length from which the catalog hint is shown
const MinSubjectHintLength = 4

// RecentStore lists and forgets completed downloads
type RecentStore interface {
	Recent(limit int) ([]history.Entry, error)
	Remove(id string) error
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	fyneApp      fyne.App
	controller   *app.Controller
	recent       RecentStore
	catalog      *paper.Catalog
	settings     *config.Settings
	localization *Localization
	recentLimit  int
	now          func() time.Time

	// Header
	titleText    *widget.RichText
	titleSegment *widget.TextSegment
	taglineLabel *widget.Label

	// Form
	subjectLabel    *widget.Label
	subjectEntry    *widget.SelectEntry
	subjectHint     *widget.Label
	yearLabel       *widget.Label
	yearSelect      *widget.Select
	sessionLabel    *widget.Label
	sessionRadio    *widget.RadioGroup
	componentLabel  *widget.Label
	componentSelect *widget.Select
	typeLabel       *widget.Label
	typeRadio       *widget.RadioGroup
	downloadBtn     *widget.Button

	// Progress and status
	progressBar      *widget.ProgressBar
	progressInfinite *widget.ProgressBarInfinite
	statusLabel      *widget.Label

	// Recent downloads
	recentTitle   *widget.Label
	recentEmpty   *widget.Label
	recentList    *widget.List
	recentEntries []history.Entry

	state app.State
}

// NewRootUI creates and initializes the main UI. recent may be nil when the
// download history is unavailable.
func NewRootUI(window fyne.Window, fyneApp fyne.App, controller *app.Controller, recent RecentStore) *RootUI {
	settings := config.NewSettings(fyneApp)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	catalog, err := paper.DefaultCatalog()
	if err != nil {
		log.Error().Err(err).Msg("subject catalog unavailable")
	}

	ui := &RootUI{
		window:       window,
		fyneApp:      fyneApp,
		controller:   controller,
		recent:       recent,
		catalog:      catalog,
		settings:     settings,
		localization: localization,
		recentLimit:  DefaultRecentLimit,
		now:          time.Now,
		state:        controller.State(),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Worker events arrive on the event-draining goroutine
	controller.SetChangeCallback(func(s app.State) {
		fyne.Do(func() { ui.onStateChange(s) })
	})

	ui.setupUI()
	ui.render(ui.state)
	ui.refreshRecent()
	return ui
}

// SetRecentLimit sets how many history entries are listed
func (ui *RootUI) SetRecentLimit(limit int) {
	if limit < 1 {
		limit = DefaultRecentLimit
	}
	ui.recentLimit = limit
	ui.refreshRecent()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.titleSegment = &widget.TextSegment{Style: widget.RichTextStyle{
		Alignment: fyne.TextAlignCenter,
		SizeName:  theme.SizeNameHeadingText,
		TextStyle: fyne.TextStyle{Bold: true},
	}}
	ui.titleText = widget.NewRichText(ui.titleSegment)
	ui.taglineLabel = widget.NewLabel("")
	ui.taglineLabel.Alignment = fyne.TextAlignCenter
	ui.taglineLabel.TextStyle = fyne.TextStyle{Italic: true}

	ui.subjectLabel = widget.NewLabel("")
	ui.subjectEntry = widget.NewSelectEntry(ui.catalog.Codes())
	ui.subjectEntry.SetText(ui.settings.GetLastSubjectCode())
	ui.subjectEntry.OnChanged = func(string) { ui.updateSubjectHint() }
	// Enter in the subject field acts like the Download button
	ui.subjectEntry.OnSubmitted = func(string) {
		if ui.downloadBtn.Disabled() {
			return
		}
		ui.onDownloadClick()
	}
	ui.subjectHint = widget.NewLabel("")
	ui.subjectHint.Importance = widget.LowImportance

	ui.yearLabel = widget.NewLabel("")
	ui.yearSelect = widget.NewSelect(model.YearOptions(ui.now()), nil)

	ui.sessionLabel = widget.NewLabel("")
	ui.sessionRadio = widget.NewRadioGroup(nil, nil)
	ui.sessionRadio.Horizontal = true
	ui.sessionRadio.Required = true

	ui.componentLabel = widget.NewLabel("")
	ui.componentSelect = widget.NewSelect(model.ComponentOptions(), nil)

	ui.typeLabel = widget.NewLabel("")
	ui.typeRadio = widget.NewRadioGroup(nil, nil)
	ui.typeRadio.Horizontal = true
	ui.typeRadio.Required = true

	ui.downloadBtn = widget.NewButton("", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Max = download.MaxPercent
	ui.progressInfinite = widget.NewProgressBarInfinite()
	ui.progressInfinite.Stop()
	ui.progressInfinite.Hide()

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	ui.recentTitle = widget.NewLabel("")
	ui.recentTitle.TextStyle = fyne.TextStyle{Bold: true}
	ui.recentEmpty = widget.NewLabel("")
	ui.recentEmpty.Importance = widget.LowImportance
	ui.recentList = widget.NewList(
		func() int { return len(ui.recentEntries) },
		func() fyne.CanvasObject { return ui.createHistoryItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateHistoryItem(id, obj) },
	)

	ui.refreshUITexts()
	ui.sessionRadio.SetSelected(ui.localization.GetText(KeySummer))
	ui.typeRadio.SetSelected(ui.localization.GetText(KeyQuestionPaper))
	ui.updateSubjectHint()

	subjectRow := container.NewBorder(nil, nil, nil, ui.subjectHint, ui.subjectEntry)
	form := container.New(
		layout.NewFormLayout(),
		ui.subjectLabel, subjectRow,
		ui.yearLabel, ui.yearSelect,
		ui.sessionLabel, ui.sessionRadio,
		ui.componentLabel, ui.componentSelect,
		ui.typeLabel, ui.typeRadio,
	)

	progress := container.NewStack(ui.progressBar, ui.progressInfinite)

	top := container.NewVBox(
		ui.titleText,
		ui.taglineLabel,
		widget.NewSeparator(),
		form,
		ui.downloadBtn,
		progress,
		ui.statusLabel,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, ui.recentTitle, nil, ui.recentEmpty),
	)

	content := container.NewBorder(
		top,           // top
		nil,           // bottom
		nil,           // left
		nil,           // right
		ui.recentList, // center
	)

	ui.window.SetContent(content)
	log.Debug().Msg("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	openFolderItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenOutputFolder), ui.onOpenOutputFolder)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), openFolderItem, settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language. The radio
// options are localized, so their selection is carried over by position.
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))

	ui.titleSegment.Text = l.GetText(KeyAppTitle)
	ui.titleText.Refresh()
	ui.taglineLabel.SetText(l.GetText(KeyTagline))
	ui.subjectLabel.SetText(l.GetText(KeySubjectCode))
	ui.subjectEntry.SetPlaceHolder(l.GetText(KeySubjectPlaceholder))
	ui.yearLabel.SetText(l.GetText(KeyYear))
	ui.yearSelect.PlaceHolder = l.GetText(KeySelect)
	ui.yearSelect.Refresh()
	ui.sessionLabel.SetText(l.GetText(KeySession))
	ui.componentLabel.SetText(l.GetText(KeyComponent))
	ui.componentSelect.PlaceHolder = l.GetText(KeySelect)
	ui.componentSelect.Refresh()
	ui.typeLabel.SetText(l.GetText(KeyPaperType))
	ui.downloadBtn.SetText(l.GetText(KeyDownload))
	ui.recentTitle.SetText(l.GetText(KeyRecent))
	ui.recentEmpty.SetText(l.GetText(KeyNoRecent))

	relabel(ui.sessionRadio, []string{l.GetText(KeySummer), l.GetText(KeyWinter)})
	relabel(ui.typeRadio, []string{l.GetText(KeyQuestionPaper), l.GetText(KeyMarkScheme)})

	ui.updateSubjectHint()
	ui.statusLabel.SetText(l.StatusText(ui.state))
	ui.recentList.Refresh()
}

// relabel swaps the options of a radio group keeping the selected position
func relabel(group *widget.RadioGroup, options []string) {
	selected := indexOf(group.Options, group.Selected)
	group.Options = options
	if selected >= 0 && selected < len(options) {
		group.Selected = options[selected]
	} else {
		group.Selected = ""
	}
	group.Refresh()
}

func indexOf(options []string, value string) int {
	for i, o := range options {
		if o == value {
			return i
		}
	}
	return -1
}

// updateSubjectHint shows the catalog name for the typed subject code
func (ui *RootUI) updateSubjectHint() {
	code := strings.TrimSpace(ui.subjectEntry.Text)
	if len(code) < MinSubjectHintLength {
		ui.subjectHint.SetText("")
		return
	}
	subject, ok := ui.catalog.Lookup(code)
	if !ok {
		ui.subjectHint.SetText(ui.localization.GetText(KeyUnknownSubject))
		return
	}
	ui.subjectHint.SetText(subject.Name)
}

// request builds a download request from the current form values
func (ui *RootUI) request() model.DownloadRequest {
	req := model.DownloadRequest{
		SubjectCode: strings.TrimSpace(ui.subjectEntry.Text),
		Year:        model.ShortYear(ui.yearSelect.Selected),
		Component:   ui.componentSelect.Selected,
	}

	switch indexOf(ui.sessionRadio.Options, ui.sessionRadio.Selected) {
	case 0:
		req.Session = model.SessionSummer
	case 1:
		req.Session = model.SessionWinter
	}

	switch indexOf(ui.typeRadio.Options, ui.typeRadio.Selected) {
	case 0:
		req.PaperType = model.PaperQuestion
	case 1:
		req.PaperType = model.PaperMarkScheme
	}
	return req
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	req := ui.request()
	if req.SubjectCode != "" {
		ui.settings.SetLastSubjectCode(req.SubjectCode)
	}

	state := ui.controller.Submit(req)
	log.Debug().
		Str("subject", req.SubjectCode).
		Str("year", req.Year).
		Str("component", req.Component).
		Str("notice", string(state.Notice)).
		Msg("download requested")
	ui.render(state)
}

// onStateChange handles states produced by worker events
func (ui *RootUI) onStateChange(s app.State) {
	ui.render(s)

	if s.Notice != app.NoticeComplete {
		return
	}
	ui.refreshRecent()
	ui.sendCompletionNotification(s)

	if ui.settings.GetRevealOnComplete() && s.Target.LocalPath != "" {
		ui.onRevealFile(s.Target.LocalPath)
	}
}

// render shows a state in the progress bar, the status label and the
// Download button
func (ui *RootUI) render(s app.State) {
	ui.state = s

	if s.Phase.IsActive() && s.Progress.Indeterminate {
		ui.progressBar.Hide()
		ui.progressInfinite.Show()
		ui.progressInfinite.Start()
	} else {
		ui.progressInfinite.Stop()
		ui.progressInfinite.Hide()
		ui.progressBar.Show()
		ui.progressBar.SetValue(float64(s.Progress.Percent))
	}

	ui.statusLabel.SetText(ui.localization.StatusText(s))
	if s.Notice == app.NoticeError {
		ui.statusLabel.Importance = widget.DangerImportance
	} else {
		ui.statusLabel.Importance = widget.MediumImportance
	}
	ui.statusLabel.Refresh()

	if s.CanSubmit() {
		ui.downloadBtn.Enable()
	} else {
		ui.downloadBtn.Disable()
	}
}

// sendCompletionNotification sends a system notification for a finished paper
func (ui *RootUI) sendCompletionNotification(s app.State) {
	ui.fyneApp.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyDownloadComplete),
		Content: s.Target.FileName,
	})
}

// refreshRecent reloads the recent downloads list from the history store
func (ui *RootUI) refreshRecent() {
	if ui.recent == nil {
		ui.recentEntries = nil
	} else {
		entries, err := ui.recent.Recent(ui.recentLimit)
		if err != nil {
			log.Error().Err(err).Msg("failed to load download history")
		}
		ui.recentEntries = entries
	}

	if len(ui.recentEntries) == 0 {
		ui.recentEmpty.Show()
	} else {
		ui.recentEmpty.Hide()
	}
	ui.recentList.Refresh()
}

// createHistoryItem creates a new history row for the list
func (ui *RootUI) createHistoryItem() fyne.CanvasObject {
	row := NewHistoryRow()
	row.SetCallbacks(ui.onOpenFile, ui.onRevealFile, ui.onCopyPath, ui.onRemoveEntry)
	return row
}

// updateHistoryItem binds a list item to its entry
func (ui *RootUI) updateHistoryItem(id widget.ListItemID, obj fyne.CanvasObject) {
	if id < 0 || id >= len(ui.recentEntries) {
		return
	}
	if row, ok := obj.(*HistoryRow); ok {
		row.Update(ui.recentEntries[id])
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	dlg := NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
	dlg.Show()
}

// onOpenOutputFolder opens the directory papers are saved to
func (ui *RootUI) onOpenOutputFolder() {
	dir := ui.settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		ui.showError(err)
		return
	}
	if err := platform.OpenDirectory(dir); err != nil {
		ui.showError(err)
	}
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.showError(err)
		return
	}
	log.Debug().Str("path", filePath).Msg("file revealed")
}

// onOpenFile handles opening a downloaded paper with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		ui.showError(err)
		return
	}
	log.Debug().Str("path", filePath).Msg("file opened")
}

// onCopyPath handles copying file path to clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	ui.fyneApp.Clipboard().SetContent(filePath)
	widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyPathCopied)), ui.window.Canvas())
}

// onRemoveEntry forgets a download; the file itself stays on disk
func (ui *RootUI) onRemoveEntry(entryID string) {
	if ui.recent == nil {
		return
	}
	if err := ui.recent.Remove(entryID); err != nil {
		log.Error().Err(err).Str("entry", entryID).Msg("failed to remove history entry")
	}
	ui.refreshRecent()
}

func (ui *RootUI) showError(err error) {
	log.Error().Err(err).Msg("file action failed")
	message := fmt.Sprintf("%s%s%v", ui.localization.GetText(KeyErrorOpeningFile), DetailSeparator, err)
	widget.ShowPopUp(widget.NewLabel(message), ui.window.Canvas())
}
