package cli

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/optdoc/optdoc/internal/engine"
)

// CLIProgressReporter implements progress reporting with progress bars.
// All output goes to out (stderr by default) so a document rendered to
// stdout stays clean. OnFileProcessed arrives from worker goroutines,
// so the counter is atomic and the bar does its own locking.
type CLIProgressReporter struct {
	quiet          bool
	out            io.Writer
	fileBar        *progressbar.ProgressBar
	startTime      time.Time
	totalFiles     int
	processedFiles atomic.Int64
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		out:       os.Stderr,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	log.Info("discovering files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(nixFiles int) {
	if c.quiet {
		return
	}
	log.Info("discovered module files", "count", nixFiles)
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.totalFiles = totalFiles
	c.processedFiles.Store(0)

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Extracting options"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string) {
	if c.quiet {
		return
	}
	c.processedFiles.Add(1)
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(result *engine.Result) {
	if c.quiet {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "✓ Extraction complete: %d options from %d files in %.1fs\n",
		len(result.Options), result.FilesProcessed, result.Duration.Seconds())
	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(c.out, "  Diagnostics: %d (run with --verbose for details)\n", len(result.Diagnostics))
	}
}
