package paper

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ytget/quickpapers/internal/model"
)

// DefaultBaseURL is the archive directory all papers are fetched from
const DefaultBaseURL = "https://pastpapers.papacambridge.com/directories/CAIE/CAIE-pastpapers/upload/"

// Template resolves requests against an archive base URL
type Template struct {
	BaseURL string
}

// NewTemplate returns a template for baseURL, falling back to DefaultBaseURL
// when baseURL is empty. The base must be an absolute http(s) URL.
func NewTemplate(baseURL string) (Template, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return Template{}, fmt.Errorf("parse archive url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Template{}, fmt.Errorf("archive url must start with http:// or https://: %s", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return Template{BaseURL: baseURL}, nil
}

// Resolve derives the remote URL and local path for a request. It is a pure
// function of the request, the base URL and outputDir.
func (t Template) Resolve(req model.DownloadRequest, outputDir string) (model.Target, error) {
	if err := req.Validate(); err != nil {
		return model.Target{}, err
	}
	req = req.Normalized()
	name := req.FileName()
	return model.Target{
		RemoteURL: t.BaseURL + name,
		LocalPath: filepath.Join(outputDir, name),
		FileName:  name,
	}, nil
}
