package reporter

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/five82/vidmeta/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	verbose  bool
	progress *progressbar.ProgressBar
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	magenta  *color.Color
	bold     *color.Color
	faint    *color.Color
}

// TerminalOption configures a TerminalReporter.
type TerminalOption func(*TerminalReporter)

// WithOutput sets the writer for regular output. Defaults to stdout.
func WithOutput(w io.Writer) TerminalOption {
	return func(r *TerminalReporter) { r.out = w }
}

// WithErrorOutput sets the writer for errors and the progress bar.
// Defaults to stderr.
func WithErrorOutput(w io.Writer) TerminalOption {
	return func(r *TerminalReporter) { r.errOut = w }
}

// WithVerbose enables Verbose messages.
func WithVerbose(verbose bool) TerminalOption {
	return func(r *TerminalReporter) { r.verbose = verbose }
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter(opts ...TerminalOption) *TerminalReporter {
	r := &TerminalReporter{
		out:     os.Stdout,
		errOut:  os.Stderr,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
		faint:   color.New(color.Faint),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) Hardware(summary HardwareSummary) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, "HARDWARE")
	r.printLabel(10, "Hostname:", summary.Hostname)
	r.printLabel(10, "Platform:", fmt.Sprintf("%s/%s", summary.OS, summary.Arch))
}

func (r *TerminalReporter) ScanStarted(info ScanStartInfo) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, "SCAN")
	r.printLabel(10, "Source:", info.SourceDir)
	r.printLabel(10, "Report:", info.OutputPath)
	r.printLabel(10, "Videos:", fmt.Sprintf("%d (%d other entries skipped)", info.TotalFiles, info.Skipped))

	if info.TotalFiles == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
	}
	r.progress = progressbar.NewOptions(
		info.TotalFiles,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Probing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FileProgress(context FileProgressContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress == nil {
		return
	}
	r.progress.Describe(context.Filename)
}

func (r *TerminalReporter) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Add(1)
	}
}

func (r *TerminalReporter) FileProbed(result FileResult) {
	r.advance()
	if !r.verbose {
		return
	}

	rate := "unknown fps"
	if result.FrameRate != nil {
		rate = fmt.Sprintf("%.3f fps", *result.FrameRate)
	}
	audio := "no audio"
	if result.HasAudio {
		audio = "audio"
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s (%s, %s, %s, %s)\n",
		r.green.Sprint("✓"), result.Filename, util.FormatBytes(result.SizeBytes), result.Duration, rate, audio)
}

func (r *TerminalReporter) FileFailed(failure FileFailure) {
	r.advance()
	_, _ = fmt.Fprintf(r.errOut, "  %s %s: %s\n", r.red.Sprint("✗"), failure.Filename, failure.Reason)
}

func (r *TerminalReporter) Warning(message string) {
	_, _ = fmt.Fprintln(r.errOut)
	_, _ = r.yellow.Fprintf(r.errOut, "WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.finishProgress()

	_, _ = fmt.Fprintln(r.errOut)
	_, _ = r.red.Fprintf(r.errOut, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(r.errOut, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) ReportSaved(info ReportInfo) {
	r.finishProgress()

	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintf(r.out, "%s %s %s (%d records)\n",
		color.New(color.FgGreen, color.Bold).Sprint("✓"),
		r.bold.Sprint("Saved to"),
		r.green.Sprint(info.Path),
		info.Records)
}

func (r *TerminalReporter) ScanComplete(summary ScanSummary) {
	r.finishProgress()

	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, "SUMMARY")
	_, _ = fmt.Fprintf(r.out, "  %s\n", r.bold.Sprintf("%d of %d probed", summary.Probed, summary.Enumerated))
	_, _ = fmt.Fprintf(r.out, "  Failed: %s, skipped: %d\n", r.red.Sprint(summary.Failed), summary.Skipped)
	_, _ = fmt.Fprintf(r.out, "  Time: %s\n", util.FormatElapsed(summary.Elapsed))
	if !summary.ReportSaved {
		_, _ = fmt.Fprintf(r.out, "  %s\n", r.yellow.Sprint("No report was written"))
	}
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.magenta.Sprint("›"), r.faint.Sprint(message))
}
