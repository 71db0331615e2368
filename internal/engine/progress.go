package engine

// ProgressReporter provides callbacks for reporting extraction
// progress. Implementations can display progress bars, log messages,
// or remain silent.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(nixFiles int)

	// OnFileProcessingStart is called before processing files.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file is processed. Files are
	// processed by a worker pool, so this is the one callback that can
	// arrive from multiple goroutines at once; implementations must be
	// safe for concurrent use.
	OnFileProcessed(fileName string)

	// OnComplete is called when the run finishes successfully.
	OnComplete(result *Result)
}

// NoOpProgressReporter is a progress reporter that does nothing. Used
// when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                 {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(nixFiles int)  {}
func (n *NoOpProgressReporter) OnFileProcessingStart(total int)   {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string)   {}
func (n *NoOpProgressReporter) OnComplete(result *Result)         {}
