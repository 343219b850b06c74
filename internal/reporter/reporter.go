package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	Hardware(summary HardwareSummary)
	ScanStarted(info ScanStartInfo)
	FileProgress(context FileProgressContext)
	FileProbed(result FileResult)
	FileFailed(failure FileFailure)
	Warning(message string)
	Error(err ReporterError)
	ReportSaved(info ReportInfo)
	ScanComplete(summary ScanSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Hardware(HardwareSummary)         {}
func (NullReporter) ScanStarted(ScanStartInfo)        {}
func (NullReporter) FileProgress(FileProgressContext) {}
func (NullReporter) FileProbed(FileResult)            {}
func (NullReporter) FileFailed(FileFailure)           {}
func (NullReporter) Warning(string)                   {}
func (NullReporter) Error(ReporterError)              {}
func (NullReporter) ReportSaved(ReportInfo)           {}
func (NullReporter) ScanComplete(ScanSummary)         {}
func (NullReporter) Verbose(string)                   {}
