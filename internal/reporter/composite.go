package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter. Nil reporters are
// dropped.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	kept := make([]Reporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			kept = append(kept, r)
		}
	}
	return &CompositeReporter{reporters: kept}
}

func (c *CompositeReporter) Hardware(summary HardwareSummary) {
	for _, r := range c.reporters {
		r.Hardware(summary)
	}
}

func (c *CompositeReporter) ScanStarted(info ScanStartInfo) {
	for _, r := range c.reporters {
		r.ScanStarted(info)
	}
}

func (c *CompositeReporter) FileProgress(context FileProgressContext) {
	for _, r := range c.reporters {
		r.FileProgress(context)
	}
}

func (c *CompositeReporter) FileProbed(result FileResult) {
	for _, r := range c.reporters {
		r.FileProbed(result)
	}
}

func (c *CompositeReporter) FileFailed(failure FileFailure) {
	for _, r := range c.reporters {
		r.FileFailed(failure)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) ReportSaved(info ReportInfo) {
	for _, r := range c.reporters {
		r.ReportSaved(info)
	}
}

func (c *CompositeReporter) ScanComplete(summary ScanSummary) {
	for _, r := range c.reporters {
		r.ScanComplete(summary)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
