package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/quickpapers/internal/history"
)

// CompletedAtLayout is how the completion time is shown in a history row
const CompletedAtLayout = "2006-01-02 15:04"

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// describeEntry returns the secondary line of a history row
func describeEntry(e history.Entry) string {
	when := DashPlaceholder
	if !e.CompletedAt.IsZero() {
		when = e.CompletedAt.In(time.Local).Format(CompletedAtLayout)
	}
	return formatFileSize(e.Size) + MiddleDotSeparator + when
}

// HistoryRow shows one completed download with its file actions
type HistoryRow struct {
	widget.BaseWidget

	entry history.Entry

	nameLabel   *widget.Label
	detailLabel *widget.Label

	openBtn   *widget.Button // open file with default app
	revealBtn *widget.Button // reveal in file manager
	copyBtn   *widget.Button
	removeBtn *widget.Button

	onOpen     func(filePath string)
	onReveal   func(filePath string)
	onCopyPath func(filePath string)
	onRemove   func(entryID string)
}

// NewHistoryRow creates a new history row widget
func NewHistoryRow() *HistoryRow {
	row := &HistoryRow{}
	row.ExtendBaseWidget(row)
	row.createUI()
	return row
}

// SetCallbacks sets the action callbacks
func (r *HistoryRow) SetCallbacks(
	onOpen func(filePath string),
	onReveal func(filePath string),
	onCopyPath func(filePath string),
	onRemove func(entryID string),
) {
	r.onOpen = onOpen
	r.onReveal = onReveal
	r.onCopyPath = onCopyPath
	r.onRemove = onRemove
}

func (r *HistoryRow) createUI() {
	r.nameLabel = widget.NewLabel("")
	r.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.nameLabel.Truncation = fyne.TextTruncateEllipsis

	r.detailLabel = widget.NewLabel("")
	r.detailLabel.Importance = widget.LowImportance

	r.openBtn = widget.NewButtonWithIcon("", theme.FileIcon(), func() {
		if r.onOpen != nil && r.entry.LocalPath != "" {
			r.onOpen(r.entry.LocalPath)
		}
	})
	r.revealBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		if r.onReveal != nil && r.entry.LocalPath != "" {
			r.onReveal(r.entry.LocalPath)
		}
	})
	r.copyBtn = widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
		if r.onCopyPath != nil && r.entry.LocalPath != "" {
			r.onCopyPath(r.entry.LocalPath)
		}
	})
	r.removeBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if r.onRemove != nil && r.entry.ID != "" {
			r.onRemove(r.entry.ID)
		}
	})

	for _, btn := range []*widget.Button{r.openBtn, r.revealBtn, r.copyBtn, r.removeBtn} {
		btn.Importance = widget.LowImportance
	}
}

// Update replaces the entry shown by the row
func (r *HistoryRow) Update(e history.Entry) {
	r.entry = e
	r.nameLabel.SetText(e.FileName)
	r.detailLabel.SetText(describeEntry(e))
	r.Refresh()
}

// Entry returns the entry shown by the row
func (r *HistoryRow) Entry() history.Entry {
	return r.entry
}

// CreateRenderer implements fyne.Widget
func (r *HistoryRow) CreateRenderer() fyne.WidgetRenderer {
	actions := container.NewHBox(r.openBtn, r.revealBtn, r.copyBtn, r.removeBtn)
	text := container.NewVBox(r.nameLabel, r.detailLabel)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, actions, text))
}

// MinSize keeps rows readable in narrow windows
func (r *HistoryRow) MinSize() fyne.Size {
	size := r.BaseWidget.MinSize()
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowDefaultH {
		size.Height = RowDefaultH
	}
	return size
}
