package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Session is the exam sitting period
type Session string

const (
	SessionSummer Session = "summer"
	SessionWinter Session = "winter"
)

// Letter returns the single letter used for the session in archive file names
func (s Session) Letter() string {
	switch s {
	case SessionSummer:
		return "s"
	case SessionWinter:
		return "w"
	default:
		return ""
	}
}

// ParseSession accepts a session name or its file name letter, in any case
func ParseSession(s string) (Session, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", string(SessionSummer):
		return SessionSummer, nil
	case "w", string(SessionWinter):
		return SessionWinter, nil
	}
	return "", fmt.Errorf("unknown session %q", s)
}

// PaperType is the kind of document fetched for a component
type PaperType string

const (
	PaperQuestion   PaperType = "questionPaper"
	PaperMarkScheme PaperType = "markScheme"
)

// Code returns the two-letter document code used in archive file names
func (p PaperType) Code() string {
	switch p {
	case PaperQuestion:
		return "qp"
	case PaperMarkScheme:
		return "ms"
	default:
		return ""
	}
}

// ParsePaperType accepts a paper type name or its two-letter code, in any case
func ParsePaperType(s string) (PaperType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "qp", strings.ToLower(string(PaperQuestion)):
		return PaperQuestion, nil
	case "ms", strings.ToLower(string(PaperMarkScheme)):
		return PaperMarkScheme, nil
	}
	return "", fmt.Errorf("unknown paper type %q", s)
}

// Year range offered by the form
const (
	FirstArchiveYear = 2010
	MaxPaperNumber   = 6
	MaxVariant       = 3
)

// DownloadRequest holds the five fields collected by the form
type DownloadRequest struct {
	SubjectCode string
	Year        string // two digits, e.g. "19"
	Session     Session
	PaperType   PaperType
	Component   string // e.g. "11", "12", "13"
}

// Validate checks that every field is present and well formed. Missing
// fields produce an error matching ErrMissingFields.
func (r DownloadRequest) Validate() error {
	var missing []string
	code := strings.TrimSpace(r.SubjectCode)
	if code == "" {
		missing = append(missing, "subject code")
	}
	if r.Year == "" {
		missing = append(missing, "year")
	}
	if r.Session.Letter() == "" {
		missing = append(missing, "session")
	}
	if r.PaperType.Code() == "" {
		missing = append(missing, "paper type")
	}
	if r.Component == "" {
		missing = append(missing, "component")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Err: ErrMissingFields}
	}

	if !isAlphanumeric(code) {
		return &ValidationError{Fields: []string{"subject code"}, Err: ErrInvalidSubjectCode}
	}
	if len(r.Year) != 2 || !isDigits(r.Year) {
		return &ValidationError{Fields: []string{"year"}, Err: ErrInvalidYear}
	}
	if !isDigits(r.Component) {
		return &ValidationError{Fields: []string{"component"}, Err: ErrInvalidComponent}
	}
	return nil
}

// Normalized returns a copy with the subject code trimmed
func (r DownloadRequest) Normalized() DownloadRequest {
	r.SubjectCode = strings.TrimSpace(r.SubjectCode)
	return r
}

// FileName returns the archive file name for the request,
// e.g. "9709_s19_qp_11.pdf". The request must be valid.
func (r DownloadRequest) FileName() string {
	return fmt.Sprintf("%s_%s%s_%s_%s.pdf",
		strings.TrimSpace(r.SubjectCode), r.Session.Letter(), r.Year, r.PaperType.Code(), r.Component)
}

// Target is where a request is fetched from and stored to
type Target struct {
	RemoteURL string
	LocalPath string
	FileName  string
}

// Progress is the transfer state reported by the worker
type Progress struct {
	Percent       int   // 0 to 100
	Received      int64 // bytes written so far
	Total         int64 // content length, -1 if unknown
	Indeterminate bool  // true when Total is unknown
}

// ShortYear returns the last two digits of a four-digit year string.
// Two-digit input is returned unchanged; anything else yields "".
func ShortYear(year string) string {
	year = strings.TrimSpace(year)
	if !isDigits(year) {
		return ""
	}
	switch len(year) {
	case 2:
		return year
	case 4:
		return year[2:]
	default:
		return ""
	}
}

// YearOptions returns the selectable years, newest first, from
// FirstArchiveYear up to the year before now
func YearOptions(now time.Time) []string {
	last := now.Year() - 1
	if last < FirstArchiveYear {
		return nil
	}
	years := make([]string, 0, last-FirstArchiveYear+1)
	for y := last; y >= FirstArchiveYear; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

// ComponentOptions returns the selectable components "11".."63"
func ComponentOptions() []string {
	options := make([]string, 0, MaxPaperNumber*MaxVariant)
	for paper := 1; paper <= MaxPaperNumber; paper++ {
		for variant := 1; variant <= MaxVariant; variant++ {
			options = append(options, fmt.Sprintf("%d%d", paper, variant))
		}
	}
	return options
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return s != ""
}
