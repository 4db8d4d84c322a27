package session

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jamiecraik/behaviorscore/internal/logging"
)

// Orchestrator performs full directory scans: cold start and on-demand
// rescans both feed unseen files through the same pipeline the watcher
// uses. A rescan never removes or mutates existing entries.
type Orchestrator struct {
	root string
	proc *Processor
	log  *logrus.Entry
}

// NewOrchestrator creates a scan orchestrator over the given root.
func NewOrchestrator(root string, proc *Processor) *Orchestrator {
	return &Orchestrator{
		root: root,
		proc: proc,
		log:  logging.NewLogger("scan"),
	}
}

// Scan enumerates every transcript file under the root and scores the
// ones not yet in the store, persisting after each success so a crash
// mid-scan loses at most the in-flight file. It returns the number of
// newly scored sessions. Per-file failures are logged and skipped; a
// store I/O failure aborts the scan.
func (o *Orchestrator) Scan() (int, error) {
	var paths []string
	err := filepath.WalkDir(o.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			o.log.WithError(err).WithField("path", path).Warn("Cannot read directory entry, skipping")
			return nil
		}
		if !d.IsDir() && IsTranscript(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking %s: %w", o.root, err)
	}

	o.log.WithFields(logrus.Fields{
		"root":  o.root,
		"files": len(paths),
	}).Debug("Enumerated transcript files")

	scored := 0
	for _, path := range paths {
		added, err := o.proc.ProcessFile(path)
		if err != nil {
			return scored, err
		}
		if added {
			scored++
		}
	}

	if scored > 0 {
		o.log.WithField("new", scored).Info("Scan complete")
	}
	return scored, nil
}
