package cli

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/optdoc/optdoc/internal/engine"
)

// Test Plan for CLI Progress Reporting:
// - OnFileProcessed is safe under concurrent calls and counts exactly
// - All progress output goes to the reporter's writer, never stdout
// - The writer defaults to stderr
// - Quiet mode suppresses every callback's output

func TestCLIProgressReporter_ConcurrentFileCallbacks(t *testing.T) {
	t.Parallel()

	r := NewCLIProgressReporter(false)
	r.out = io.Discard
	r.OnFileProcessingStart(64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				r.OnFileProcessed("mod.nix")
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 64, r.processedFiles.Load())
}

func TestCLIProgressReporter_WritesToConfiguredWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewCLIProgressReporter(false)
	r.out = &buf

	r.OnFileProcessingStart(1)
	r.OnFileProcessed("mod.nix")
	r.OnComplete(&engine.Result{FilesProcessed: 1, Duration: time.Second})

	assert.Contains(t, buf.String(), "Extraction complete")
}

func TestCLIProgressReporter_DefaultsToStderr(t *testing.T) {
	t.Parallel()

	r := NewCLIProgressReporter(true)
	assert.Equal(t, os.Stderr, r.out)
}

func TestCLIProgressReporter_QuietSuppressesOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewCLIProgressReporter(true)
	r.out = &buf

	r.OnDiscoveryStart()
	r.OnDiscoveryComplete(3)
	r.OnFileProcessingStart(3)
	r.OnFileProcessed("mod.nix")
	r.OnComplete(&engine.Result{FilesProcessed: 3})

	assert.Empty(t, buf.String())
}
