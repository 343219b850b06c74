package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs one JSON event per line.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
	now    func() time.Time
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return NewJSONReporterWithWriter(os.Stdout)
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		writer: w,
		now:    time.Now,
	}
}

func (r *JSONReporter) timestamp() int64 {
	return r.now().Unix()
}

func (r *JSONReporter) write(v map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) Hardware(summary HardwareSummary) {
	r.write(map[string]interface{}{
		"type":      "hardware",
		"hostname":  summary.Hostname,
		"os":        summary.OS,
		"arch":      summary.Arch,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) ScanStarted(info ScanStartInfo) {
	files := info.FileList
	if files == nil {
		files = []string{}
	}
	r.write(map[string]interface{}{
		"type":        "scan_started",
		"source_dir":  info.SourceDir,
		"output_path": info.OutputPath,
		"total_files": info.TotalFiles,
		"skipped":     info.Skipped,
		"file_list":   files,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) FileProgress(context FileProgressContext) {
	r.write(map[string]interface{}{
		"type":         "file_progress",
		"current_file": context.CurrentFile,
		"total_files":  context.TotalFiles,
		"file_name":    context.Filename,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) FileProbed(result FileResult) {
	event := map[string]interface{}{
		"type":       "file_probed",
		"file_name":  result.Filename,
		"size_bytes": result.SizeBytes,
		"has_audio":  result.HasAudio,
		"frame_rate": nil,
		"duration":   result.Duration,
		"bit_rate":   result.BitRate,
		"timestamp":  r.timestamp(),
	}
	if result.FrameRate != nil {
		event["frame_rate"] = *result.FrameRate
	}
	r.write(event)
}

func (r *JSONReporter) FileFailed(failure FileFailure) {
	r.write(map[string]interface{}{
		"type":      "file_failed",
		"file_name": failure.Filename,
		"reason":    failure.Reason,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) ReportSaved(info ReportInfo) {
	r.write(map[string]interface{}{
		"type":      "report_saved",
		"path":      info.Path,
		"records":   info.Records,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) ScanComplete(summary ScanSummary) {
	r.write(map[string]interface{}{
		"type":            "scan_complete",
		"source_dir":      summary.SourceDir,
		"output_path":     summary.OutputPath,
		"enumerated":      summary.Enumerated,
		"skipped":         summary.Skipped,
		"probed":          summary.Probed,
		"failed":          summary.Failed,
		"report_saved":    summary.ReportSaved,
		"elapsed_seconds": summary.Elapsed.Seconds(),
		"timestamp":       r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
