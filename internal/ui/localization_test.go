package ui

import (
	"testing"
	"time"

	"github.com/ytget/quickpapers/internal/app"
	"github.com/ytget/quickpapers/internal/history"
	"github.com/ytget/quickpapers/internal/model"
)

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization()
	english := l.texts["en"]

	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !ok {
			t.Errorf("No texts for language %s", lang)
			continue
		}
		for key := range english {
			if texts[key] == "" {
				t.Errorf("Language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected system to map to en, got %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("pt")
	if got := l.GetText(KeyDownload); got != "Baixar" {
		t.Errorf("Expected Portuguese download label, got %s", got)
	}

	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "pt" {
		t.Errorf("Unknown language should be ignored, got %s", l.GetCurrentLanguage())
	}

	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key fallback, got %s", got)
	}
}

func TestLocalization_StatusText(t *testing.T) {
	l := NewLocalization()

	tests := []struct {
		name  string
		state app.State
		want  string
	}{
		{"ready", app.State{Notice: app.NoticeReady}, "Ready"},
		{"zero value", app.State{}, "Ready"},
		{"missing fields", app.State{Notice: app.NoticeMissingFields}, "Please fill in all fields"},
		{"invalid input", app.State{Notice: app.NoticeInvalidInput, Detail: "invalid subject code"}, "Invalid input: invalid subject code"},
		{
			"already downloaded",
			app.State{Notice: app.NoticeAlreadyDownloaded, Target: model.Target{FileName: "9709_s19_qp_11.pdf"}},
			"File already downloaded: 9709_s19_qp_11.pdf",
		},
		{"downloading", app.State{Notice: app.NoticeDownloading}, "Downloading..."},
		{"complete", app.State{Notice: app.NoticeComplete}, "Download complete."},
		{"busy", app.State{Notice: app.NoticeBusy}, "A download is already in progress"},
		{"error verbatim", app.State{Notice: app.NoticeError, Detail: "Error 404 - Not Found"}, "Error 404 - Not Found"},
		{"error without detail", app.State{Notice: app.NoticeError}, "Download failed"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := l.StatusText(test.state); got != test.want {
				t.Errorf("StatusText() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, test := range tests {
		if got := formatFileSize(test.bytes); got != test.want {
			t.Errorf("formatFileSize(%d) = %s, want %s", test.bytes, got, test.want)
		}
	}
}

func TestDescribeEntry(t *testing.T) {
	e := history.Entry{Size: 2048}
	if got := describeEntry(e); got != "2.0 KB"+MiddleDotSeparator+DashPlaceholder {
		t.Errorf("Unexpected description for entry without time: %s", got)
	}

	e.CompletedAt = time.Date(2024, 5, 6, 7, 8, 0, 0, time.Local)
	if got := describeEntry(e); got != "2.0 KB"+MiddleDotSeparator+"2024-05-06 07:08" {
		t.Errorf("Unexpected description: %s", got)
	}
}
