// Package vidmeta provides a Go library for building video metadata reports.
//
// Vidmeta lists the video files in a directory, asks ffprobe to describe
// each one, and writes the audio flag, frame rate, duration and bit rate
// of every file to a JSON report.
//
// Basic usage:
//
//	scanner, err := vidmeta.New(
//	    vidmeta.WithTimeout(10 * time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := scanner.Run(ctx, "/videos", "metadata.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%d of %d files probed\n", len(result.Records), result.Enumerated)
package vidmeta

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/five82/vidmeta/internal/config"
	"github.com/five82/vidmeta/internal/discovery"
	vmerrors "github.com/five82/vidmeta/internal/errors"
	"github.com/five82/vidmeta/internal/ffprobe"
	"github.com/five82/vidmeta/internal/metadata"
	"github.com/five82/vidmeta/internal/processing"
	"github.com/five82/vidmeta/internal/reporter"
)

// Re-export backend types
type Backend = config.Backend

const (
	BackendCLI        = config.BackendCLI
	BackendTranscoder = config.BackendTranscoder
)

// ParseBackend converts a backend name to a Backend value.
// Valid values are "cli" and "transcoder" (case-insensitive).
func ParseBackend(s string) (Backend, error) {
	return config.ParseBackend(s)
}

// Record is one entry of the metadata report.
type Record = metadata.Record

// Unknown is the value of duration and bit_rate when ffprobe gave none.
const Unknown = metadata.Unknown

// Reporter receives progress events during a scan.
type Reporter = reporter.Reporter

// Prober describes the container and streams of a media file.
type Prober = ffprobe.Prober

// ProbeResult is the container and stream description returned by a Prober.
type ProbeResult = ffprobe.Result

// ProberFunc adapts a plain function to the Prober interface.
type ProberFunc = ffprobe.ProberFunc

// Scanner is the main entry point for metadata scans.
type Scanner struct {
	config   *config.Config
	prober   Prober
	reporter Reporter
	logger   *slog.Logger
}

// FileError describes a file that was left out of the report.
type FileError struct {
	Path string
	Err  error
}

// ScanResult contains the result of scanning one directory.
type ScanResult struct {
	Records    []Record
	Failures   []FileError
	Enumerated int
	Skipped    int
	Cancelled  bool
	Elapsed    time.Duration
}

// RunResult contains the result of a scan that wrote a report.
type RunResult struct {
	ScanResult
	OutputPath string
	// Saved is false when the report could not be written; WriteErr says why.
	Saved    bool
	WriteErr error
}

// Option configures the scanner.
type Option func(*Scanner)

// New creates a new Scanner with the given options.
func New(opts ...Option) (*Scanner, error) {
	s := &Scanner{
		config: config.NewConfig(config.DefaultSourceDir, config.DefaultOutputPath),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.config.Validate(); err != nil {
		return nil, vmerrors.NewConfigError("invalid scanner options", err)
	}

	if s.prober == nil {
		prober, err := ffprobe.ForConfig(s.config)
		if err != nil {
			return nil, err
		}
		s.prober = prober
	}

	return s, nil
}

// WithFFprobe sets the ffprobe executable name or path.
func WithFFprobe(path string) Option {
	return func(s *Scanner) {
		s.config.FFprobePath = path
	}
}

// WithTimeout bounds each ffprobe invocation. Zero disables the limit.
// Only the cli backend honors it.
func WithTimeout(d time.Duration) Option {
	return func(s *Scanner) {
		s.config.ProbeTimeout = config.Duration(d)
	}
}

// WithBackend selects how files are probed.
func WithBackend(b Backend) Option {
	return func(s *Scanner) {
		s.config.Backend = b
	}
}

// WithProber replaces the ffprobe backend with a custom Prober.
func WithProber(p Prober) Option {
	return func(s *Scanner) {
		s.prober = p
	}
}

// WithReporter sends progress events to r.
func WithReporter(r Reporter) Option {
	return func(s *Scanner) {
		s.reporter = r
	}
}

// WithLogger sets the logger for diagnostics. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = l
	}
}

func (s *Scanner) deps() processing.Deps {
	return processing.Deps{
		Prober:   s.prober,
		Reporter: s.reporter,
		Logger:   s.logger,
	}
}

// Scan probes every video file directly inside dir without writing a
// report. Unlike Run, a directory that cannot be listed is returned as an
// error.
func (s *Scanner) Scan(ctx context.Context, dir string) (*ScanResult, error) {
	scan := processing.ScanDirectory(ctx, dir, s.deps())
	if scan.EnumerationErr != nil {
		return nil, scan.EnumerationErr
	}
	return newScanResult(scan), nil
}

// Run scans dir and writes the report to output ("-" for stdout).
//
// Probe and write failures do not make Run fail; they are recorded in the
// result. A missing dir is returned as a KindEnumeration error and nothing
// is written.
func (s *Scanner) Run(ctx context.Context, dir, output string) (*RunResult, error) {
	cfg := *s.config
	cfg.SourceDir = dir
	cfg.OutputPath = output

	run, err := processing.Run(ctx, &cfg, s.deps())
	if err != nil {
		return nil, err
	}
	if run.SourceMissing {
		return nil, vmerrors.NewEnumerationError(dir, fs.ErrNotExist)
	}

	return &RunResult{
		ScanResult: *newScanResult(run.ScanResult),
		OutputPath: output,
		Saved:      run.ReportSaved,
		WriteErr:   run.WriteErr,
	}, nil
}

func newScanResult(scan *processing.ScanResult) *ScanResult {
	result := &ScanResult{
		Records:    scan.Records(),
		Enumerated: scan.Total,
		Skipped:    scan.Skipped,
		Cancelled:  scan.Cancelled,
		Elapsed:    scan.Elapsed,
	}
	for _, o := range scan.Failures() {
		result.Failures = append(result.Failures, FileError{Path: o.Path, Err: o.Err})
	}
	return result
}

// FindVideos finds video files in a directory.
func FindVideos(dir string) ([]string, error) {
	return discovery.FindVideoFiles(dir)
}

// Extract builds the report record for path from a probe result.
func Extract(path string, probe *ProbeResult) Record {
	return metadata.Extract(path, probe)
}

// IsKind reports whether err is a vidmeta error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return vmerrors.IsKind(err, kind)
}

// ErrorKind categorizes vidmeta errors.
type ErrorKind = vmerrors.ErrorKind

const (
	KindEnumeration = vmerrors.KindEnumeration
	KindProbe       = vmerrors.KindProbe
	KindParse       = vmerrors.KindParse
	KindWrite       = vmerrors.KindWrite
	KindConfig      = vmerrors.KindConfig
	KindCommand     = vmerrors.KindCommand
	KindCancelled   = vmerrors.KindCancelled
)
