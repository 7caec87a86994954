package paper

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ytget/quickpapers/internal/model"
)

func TestNewTemplate(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"", DefaultBaseURL, false},
		{"https://example.com/papers", "https://example.com/papers/", false},
		{"http://127.0.0.1:8080/", "http://127.0.0.1:8080/", false},
		{"ftp://example.com/", "", true},
		{"not a url", "", true},
	}

	for _, test := range tests {
		tmpl, err := NewTemplate(test.in)
		if test.wantErr {
			if err == nil {
				t.Errorf("NewTemplate(%q) expected error", test.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewTemplate(%q) unexpected error: %v", test.in, err)
			continue
		}
		if tmpl.BaseURL != test.expected {
			t.Errorf("NewTemplate(%q).BaseURL = %q, expected %q", test.in, tmpl.BaseURL, test.expected)
		}
	}
}

func TestResolve(t *testing.T) {
	tmpl, err := NewTemplate("")
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}

	outputDir := filepath.Join("home", "Past Papers")
	tests := []struct {
		req  model.DownloadRequest
		url  string
		file string
	}{
		{
			model.DownloadRequest{SubjectCode: "9709", Year: "19", Session: model.SessionSummer, PaperType: model.PaperQuestion, Component: "11"},
			DefaultBaseURL + "9709_s19_qp_11.pdf",
			"9709_s19_qp_11.pdf",
		},
		{
			model.DownloadRequest{SubjectCode: "0620", Year: "22", Session: model.SessionWinter, PaperType: model.PaperMarkScheme, Component: "42"},
			DefaultBaseURL + "0620_w22_ms_42.pdf",
			"0620_w22_ms_42.pdf",
		},
	}

	for _, test := range tests {
		target, err := tmpl.Resolve(test.req, outputDir)
		if err != nil {
			t.Fatalf("Resolve(%+v): %v", test.req, err)
		}
		if target.RemoteURL != test.url {
			t.Errorf("RemoteURL = %q, expected %q", target.RemoteURL, test.url)
		}
		if target.FileName != test.file {
			t.Errorf("FileName = %q, expected %q", target.FileName, test.file)
		}
		if target.LocalPath != filepath.Join(outputDir, test.file) {
			t.Errorf("LocalPath = %q, expected %q", target.LocalPath, filepath.Join(outputDir, test.file))
		}

		again, _ := tmpl.Resolve(test.req, outputDir)
		if again != target {
			t.Errorf("Resolve is not deterministic: %+v vs %+v", again, target)
		}
	}
}

func TestResolve_InvalidRequest(t *testing.T) {
	tmpl, _ := NewTemplate("")
	_, err := tmpl.Resolve(model.DownloadRequest{Year: "19", Component: "11"}, "out")
	if !errors.Is(err, model.ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
}
