// Command quickpapers-fetch downloads one past paper from the terminal using
// the same URL template and worker as the desktop app.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/ytget/quickpapers/internal/config"
	"github.com/ytget/quickpapers/internal/download"
	"github.com/ytget/quickpapers/internal/history"
	"github.com/ytget/quickpapers/internal/logging"
	"github.com/ytget/quickpapers/internal/model"
	"github.com/ytget/quickpapers/internal/paper"
	"github.com/ytget/quickpapers/internal/platform"
)

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitExisting = 3
)

// Options holds the command line flags
type Options struct {
	Subject   string
	Year      string
	Session   string
	PaperType string
	Component string
	Dir       string
	BaseURL   string
	Force     bool
	NoHistory bool
	Quiet     bool
	Subjects  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, config.Usage())
		return exitUsage
	}

	opts := Options{}
	flag.StringVar(&opts.Subject, "subject", "", "Subject code, e.g. 9709")
	flag.StringVar(&opts.Year, "year", "", "Exam year, e.g. 2019 or 19")
	flag.StringVar(&opts.Session, "session", "summer", "Exam session: summer (s) or winter (w)")
	flag.StringVar(&opts.PaperType, "type", "qp", "Document type: qp (question paper) or ms (mark scheme)")
	flag.StringVar(&opts.Component, "component", "", "Paper component, e.g. 11")
	flag.StringVar(&opts.Dir, "dir", config.DefaultOutputDirectory(), "Directory to save the paper to")
	flag.StringVar(&opts.BaseURL, "base-url", env.ArchiveURL, "Archive directory URL")
	flag.BoolVar(&opts.Force, "force", false, "Download even if the file already exists")
	flag.BoolVar(&opts.NoHistory, "no-history", false, "Do not record the download in the history")
	flag.BoolVar(&opts.Quiet, "quiet", false, "Hide the progress bar")
	flag.BoolVar(&opts.Subjects, "subjects", false, "List the known subject codes and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -subject CODE -year YEAR -component NN [flags]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\n%s", config.Usage())
	}
	flag.Parse()

	closer, err := logging.Setup(logging.Options{Level: env.LogLevel, File: env.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		return exitUsage
	}
	defer closer.Close()

	if opts.Subjects {
		catalog, err := paper.DefaultCatalog()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		if err := listSubjects(os.Stdout, catalog); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		return exitOK
	}

	req, err := buildRequest(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		return exitUsage
	}

	template, err := paper.NewTemplate(opts.BaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	target, err := template.Resolve(req, opts.Dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	if !opts.Force {
		exists, err := platform.FileExists(target.LocalPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		if exists {
			fmt.Printf("File already downloaded: %s\n", target.LocalPath)
			return exitExisting
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	size, err := fetch(ctx, env, target, opts.Quiet)
	if err != nil {
		var statusErr *download.HTTPStatusError
		if errors.As(err, &statusErr) {
			fmt.Fprintf(os.Stderr, "%v (%s)\n", err, target.RemoteURL)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return exitFailure
	}

	if !opts.NoHistory {
		record(env.HistoryDB, target, size)
	}

	fmt.Printf("Download complete. %s\n", target.LocalPath)
	return exitOK
}

// listSubjects writes one catalog subject per line
func listSubjects(w io.Writer, catalog *paper.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range catalog.Subjects() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Code, s.Name, s.Level)
	}
	return tw.Flush()
}

// buildRequest turns the flags into a download request
func buildRequest(opts Options) (model.DownloadRequest, error) {
	session, err := model.ParseSession(opts.Session)
	if err != nil {
		return model.DownloadRequest{}, err
	}
	paperType, err := model.ParsePaperType(opts.PaperType)
	if err != nil {
		return model.DownloadRequest{}, err
	}
	req := model.DownloadRequest{
		SubjectCode: opts.Subject,
		Year:        model.ShortYear(opts.Year),
		Session:     session,
		PaperType:   paperType,
		Component:   opts.Component,
	}
	return req, req.Validate()
}

// fetch streams the paper with a terminal progress bar
func fetch(ctx context.Context, env config.Env, target model.Target, quiet bool) (int64, error) {
	svc := download.NewService(&http.Client{Timeout: env.HTTPTimeout}, nil)

	var onProgress func(model.Progress)
	if !quiet {
		bar := progressbar.NewOptions64(
			-1,
			progressbar.OptionSetDescription(target.FileName),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		defer func() {
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
		}()
		onProgress = func(p model.Progress) {
			if !p.Indeterminate && bar.GetMax64() != p.Total {
				bar.ChangeMax64(p.Total)
			}
			_ = bar.Set64(p.Received)
		}
	}

	return svc.Fetch(ctx, target, onProgress)
}

// record adds the download to the history shared with the desktop app
func record(path string, target model.Target, size int64) {
	store, err := history.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("download not recorded")
		return
	}
	defer store.Close()

	_, err = store.Add(history.Entry{
		FileName:  target.FileName,
		LocalPath: target.LocalPath,
		RemoteURL: target.RemoteURL,
		Size:      size,
	})
	if err != nil {
		log.Warn().Err(err).Msg("download not recorded")
	}
}
