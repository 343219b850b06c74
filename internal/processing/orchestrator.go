// Package processing runs a metadata scan: enumerate, probe, extract, write.
package processing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/five82/vidmeta/internal/config"
	"github.com/five82/vidmeta/internal/discovery"
	vmerrors "github.com/five82/vidmeta/internal/errors"
	"github.com/five82/vidmeta/internal/ffprobe"
	"github.com/five82/vidmeta/internal/metadata"
	"github.com/five82/vidmeta/internal/report"
	"github.com/five82/vidmeta/internal/reporter"
	"github.com/five82/vidmeta/internal/util"
)

// Outcome is the result of one enumerated file. Exactly one of Record and
// Err is set.
type Outcome struct {
	Path   string
	Record *metadata.Record
	Err    error
}

// OK reports whether the file produced a record.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Record != nil
}

// ScanResult contains the per-file outcomes of a scan, in sorted file order.
type ScanResult struct {
	SourceDir string
	// Total is the number of video files found, probed or not.
	Total    int
	Outcomes []Outcome
	Skipped  int
	// EnumerationErr is set when the directory could not be listed. The scan
	// then has no outcomes.
	EnumerationErr error
	// Cancelled is set when ctx ended before every file was probed.
	Cancelled bool
	Elapsed   time.Duration
}

// Records returns the successful records in order. Never nil.
func (r *ScanResult) Records() []metadata.Record {
	if r == nil {
		return []metadata.Record{}
	}
	records := make([]metadata.Record, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.OK() {
			records = append(records, *o.Record)
		}
	}
	return records
}

// Failures returns the outcomes that did not produce a record.
func (r *ScanResult) Failures() []Outcome {
	if r == nil {
		return nil
	}
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Deps holds the collaborators of a scan. Only Prober is required.
type Deps struct {
	Prober   ffprobe.Prober
	Reporter reporter.Reporter
	Logger   *slog.Logger
	// Stdout receives the report when the output path is "-".
	Stdout io.Writer
}

func (d Deps) withDefaults() Deps {
	if d.Reporter == nil {
		d.Reporter = reporter.NullReporter{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	return d
}

// ScanDirectory lists the video files in dir and probes each one in order.
// A listing failure is logged and yields a result with no outcomes. Probe
// failures are logged and kept as failed outcomes; the scan continues.
func ScanDirectory(ctx context.Context, dir string, deps Deps) *ScanResult {
	return scanDirectory(ctx, dir, "", deps)
}

func scanDirectory(ctx context.Context, dir, outputPath string, deps Deps) *ScanResult {
	deps = deps.withDefaults()
	rep, logger := deps.Reporter, deps.Logger

	start := time.Now()
	result := &ScanResult{SourceDir: dir, Outcomes: []Outcome{}}
	defer func() { result.Elapsed = time.Since(start) }()

	found, err := discovery.FindVideoFilesWithLogging(dir, logger)
	if err != nil {
		logger.Error("Failed to list source directory", "dir", dir, "error", err)
		rep.Warning(err.Error())
		result.EnumerationErr = err
		return result
	}
	result.Total = len(found.Files)
	result.Skipped = found.SkippedCount

	fileNames := make([]string, len(found.Files))
	for i, f := range found.Files {
		fileNames[i] = util.GetFilename(f)
	}
	rep.ScanStarted(reporter.ScanStartInfo{
		SourceDir:  dir,
		OutputPath: outputPath,
		TotalFiles: len(found.Files),
		Skipped:    found.SkippedCount,
		FileList:   fileNames,
	})

	total := len(found.Files)
	for fileIdx, path := range found.Files {
		// Check for cancellation before starting each file
		if ctx.Err() != nil {
			markCancelled(result, rep, logger, total-fileIdx)
			break
		}

		name := util.GetFilename(path)
		rep.FileProgress(reporter.FileProgressContext{
			CurrentFile: fileIdx + 1,
			TotalFiles:  total,
			Filename:    name,
		})

		outcome := probeFile(ctx, path, deps.Prober, rep, logger)
		result.Outcomes = append(result.Outcomes, outcome)

		if !outcome.OK() {
			logger.Warn("Failed to probe file", "file", name, "path", path, "error", outcome.Err)
			rep.FileFailed(reporter.FileFailure{Filename: name, Reason: failureReason(outcome.Err)})

			if vmerrors.IsCancelled(outcome.Err) {
				markCancelled(result, rep, logger, total-fileIdx-1)
				break
			}
			continue
		}

		rec := outcome.Record
		size, _ := util.GetFileSize(path)
		var rate *float64
		var rateAttr any = "null"
		if rec.FrameRate != nil {
			v := rec.FrameRate.Float64()
			rate = &v
			rateAttr = v
		}
		logger.Debug("Probed file",
			"file", name,
			"has_audio", rec.HasAudio,
			"frame_rate", rateAttr,
			"duration", rec.Duration,
			"bit_rate", rec.BitRate,
		)
		rep.FileProbed(reporter.FileResult{
			Filename:  name,
			SizeBytes: size,
			HasAudio:  rec.HasAudio,
			FrameRate: rate,
			Duration:  rec.Duration,
			BitRate:   rec.BitRate,
		})
	}

	return result
}

func probeFile(ctx context.Context, path string, prober ffprobe.Prober, rep reporter.Reporter, logger *slog.Logger) (outcome Outcome) {
	outcome.Path = path

	// Prober panics become probe failures.
	defer func() {
		if r := recover(); r != nil {
			outcome.Record = nil
			outcome.Err = vmerrors.NewProbeError(path, fmt.Errorf("prober panicked: %v", r))
		}
	}()

	probe, err := prober.Probe(ctx, path)
	if err != nil {
		if !vmerrors.IsKind(err, vmerrors.KindProbe) {
			err = vmerrors.NewProbeError(path, err)
		}
		outcome.Err = err
		return outcome
	}

	name := util.GetFilename(path)
	logger.Debug("Probe result",
		"file", name,
		"format", probe.Format.FormatName,
		"streams", len(probe.Streams),
	)
	rep.Verbose(DescribeProbe(name, probe))
	for _, diag := range metadata.Diagnose(probe) {
		logger.Debug("Unusable probe field", "path", path, "error", diag)
		rep.Verbose(fmt.Sprintf("%s: %v", name, diag))
	}

	rec := metadata.Extract(path, probe)
	outcome.Record = &rec
	return outcome
}

// DescribeProbe summarizes a probe result in one line, for example
// "a.mkv: matroska,webm, #0 video h264, #1 audio aac".
func DescribeProbe(name string, probe *ffprobe.Result) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(": ")
	if probe == nil {
		b.WriteString("no probe data")
		return b.String()
	}

	format := probe.Format.FormatName
	if format == "" {
		format = "unknown format"
	}
	b.WriteString(format)

	if len(probe.Streams) == 0 {
		b.WriteString(", no streams")
		return b.String()
	}
	for _, st := range probe.Streams {
		kind := st.CodecType
		if kind == "" {
			kind = "unknown"
		}
		codec := st.CodecName
		if codec == "" {
			codec = "?"
		}
		fmt.Fprintf(&b, ", #%d %s %s", st.Index, kind, codec)
	}
	return b.String()
}

func markCancelled(result *ScanResult, rep reporter.Reporter, logger *slog.Logger, remaining int) {
	result.Cancelled = true
	logger.Warn("Scan cancelled", "remaining_files", remaining)
	rep.Warning(fmt.Sprintf("Scan cancelled, %d files not probed", remaining))
}

// failureReason returns the most specific description of a probe failure.
func failureReason(err error) string {
	if vmerrors.IsCancelled(err) {
		return "cancelled"
	}
	if cmdErr, ok := vmerrors.CommandFailure(err); ok {
		return cmdErr.Error()
	}
	var probeErr *vmerrors.CoreError
	if errors.As(err, &probeErr) && probeErr.Underlying != nil {
		return probeErr.Underlying.Error()
	}
	return err.Error()
}

// RunResult is the outcome of a complete run.
type RunResult struct {
	*ScanResult
	OutputPath string
	// SourceMissing is set when the source directory did not exist. Nothing
	// was scanned or written.
	SourceMissing bool
	ReportSaved   bool
	WriteErr      error
	Elapsed       time.Duration
}

// Summary returns the counts reported at the end of a run.
func (r *RunResult) Summary() reporter.ScanSummary {
	s := reporter.ScanSummary{
		OutputPath:  r.OutputPath,
		ReportSaved: r.ReportSaved,
		Elapsed:     r.Elapsed,
	}
	if r.ScanResult != nil {
		s.SourceDir = r.SourceDir
		s.Enumerated = r.Total
		s.Skipped = r.Skipped
		s.Failed = len(r.Failures())
		s.Probed = len(r.Outcomes) - s.Failed
	}
	return s
}

// Run scans cfg.SourceDir and writes the report to cfg.OutputPath.
//
// A missing source directory is logged and ends the run without output.
// Listing, probe and write failures are logged and never returned: the only
// error is an invalid configuration or a nil prober.
func Run(ctx context.Context, cfg *config.Config, deps Deps) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, vmerrors.NewConfigError("invalid configuration", err)
	}
	if deps.Prober == nil {
		return nil, vmerrors.NewConfigError("no prober configured", nil)
	}
	deps = deps.withDefaults()
	rep, logger := deps.Reporter, deps.Logger

	start := time.Now()
	result := &RunResult{OutputPath: cfg.OutputPath}

	sysInfo := util.GetSystemInfo()
	rep.Hardware(reporter.HardwareSummary{
		Hostname: sysInfo.Hostname,
		OS:       sysInfo.OS,
		Arch:     sysInfo.Arch,
	})

	if !util.PathExists(cfg.SourceDir) {
		logger.Error("Source directory does not exist", "dir", cfg.SourceDir)
		rep.Error(reporter.ReporterError{
			Title:      "Source directory not found",
			Message:    cfg.SourceDir,
			Suggestion: "Pass an existing directory or set VIDMETA_SOURCE_DIR",
		})
		result.SourceMissing = true
		result.Elapsed = time.Since(start)
		return result, nil
	}

	logger.Info("Starting scan",
		"dir", cfg.SourceDir,
		"output", cfg.OutputPath,
		"backend", cfg.Backend.String(),
	)

	result.ScanResult = scanDirectory(ctx, cfg.SourceDir, cfg.OutputPath, deps)
	records := result.Records()

	if cfg.WritesToStdout() {
		result.WriteErr = report.WriteTo(deps.Stdout, cfg.OutputPath, records)
	} else {
		result.WriteErr = report.Write(cfg.OutputPath, records)
	}

	if result.WriteErr != nil {
		logger.Error("Failed to save report", "path", cfg.OutputPath, "error", result.WriteErr)
		rep.Error(reporter.ReporterError{
			Title:   "Report not saved",
			Message: result.WriteErr.Error(),
			Context: fmt.Sprintf("Output: %s", cfg.OutputPath),
		})
	} else {
		result.ReportSaved = true
		logger.Info("Saved report", "path", cfg.OutputPath, "records", len(records))
		rep.ReportSaved(reporter.ReportInfo{Path: cfg.OutputPath, Records: len(records)})
	}

	result.Elapsed = time.Since(start)
	summary := result.Summary()
	logger.Info("Scan complete",
		"enumerated", summary.Enumerated,
		"skipped", summary.Skipped,
		"probed", summary.Probed,
		"failed", summary.Failed,
		"elapsed", util.FormatElapsed(summary.Elapsed),
	)
	rep.ScanComplete(summary)

	return result, nil
}
