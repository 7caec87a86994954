package config

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"github.com/ytget/quickpapers/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir       = "output_directory"
	KeyLanguage        = "app_language"
	KeyLastSubjectCode = "last_subject_code"
	KeyRevealComplete  = "reveal_on_complete"
)

// Default values
const (
	DefaultOutputFolder   = "Past Papers"
	DefaultLanguage       = "system"
	DefaultRevealComplete = false
)

// Settings manages user preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the directory papers are saved to
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		dir = DefaultOutputDirectory()
		s.SetOutputDirectory(dir)
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// DefaultOutputDirectory is "Past Papers" under the user's Documents folder,
// or under the working directory when there is none
func DefaultOutputDirectory() string {
	docs, err := platform.GetHomeDocumentsDir()
	if err != nil {
		return DefaultOutputFolder
	}
	return filepath.Join(docs, DefaultOutputFolder)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLastSubjectCode returns the subject code of the last submission
func (s *Settings) GetLastSubjectCode() string {
	return s.app.Preferences().String(KeyLastSubjectCode)
}

// SetLastSubjectCode remembers the subject code for the next start
func (s *Settings) SetLastSubjectCode(code string) {
	s.app.Preferences().SetString(KeyLastSubjectCode, code)
}

// GetRevealOnComplete returns whether finished papers are shown in the file manager
func (s *Settings) GetRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyRevealComplete, DefaultRevealComplete)
}

// SetRevealOnComplete sets whether finished papers are shown in the file manager
func (s *Settings) SetRevealOnComplete(reveal bool) {
	s.app.Preferences().SetBool(KeyRevealComplete, reveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
