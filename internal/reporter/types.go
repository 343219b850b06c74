// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// HardwareSummary contains host information.
type HardwareSummary struct {
	Hostname string
	OS       string
	Arch     string
}

// ScanStartInfo describes a scan once the directory has been listed.
type ScanStartInfo struct {
	SourceDir  string
	OutputPath string
	TotalFiles int
	Skipped    int
	FileList   []string
}

// FileProgressContext contains the current file index within a scan.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
	Filename    string
}

// FileResult summarizes the record produced for one file.
type FileResult struct {
	Filename  string
	SizeBytes uint64
	HasAudio  bool
	FrameRate *float64
	Duration  string
	BitRate   string
}

// FileFailure describes a file that was left out of the report.
type FileFailure struct {
	Filename string
	Reason   string
}

// ReportInfo describes a saved report.
type ReportInfo struct {
	Path    string
	Records int
}

// ScanSummary contains scan completion information.
type ScanSummary struct {
	SourceDir   string
	OutputPath  string
	Enumerated  int
	Skipped     int
	Probed      int
	Failed      int
	ReportSaved bool
	Elapsed     time.Duration
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}
