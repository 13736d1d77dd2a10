package dirsyncer

import (
	"dirmirror/internal/log"
	"dirmirror/internal/model"
	"time"

	"github.com/spf13/afero"
)

//reconciler brings a replica tree into agreement with a source tree.
type reconciler struct {
	log     log.Logger
	fs      afero.Fs
	scanner *dirScanner
}

func newReconciler(logger log.Logger, fsys afero.Fs) *reconciler {
	return &reconciler{log: logger, fs: fsys, scanner: newDirScanner(logger, fsys)}
}

//reconcile walks the tree pair depth-first with an explicit stack, so deep trees don't grow the call stack.
//The first failure aborts the rest of the pass; the stats reflect what was done until then.
func (r *reconciler) reconcile(srcRoot, replicaRoot string) (model.PassStats, error) {
	start := time.Now()
	var stats model.PassStats
	exec := newExecutor(r.log, r.fs, &stats)

	stack := []dirPair{{src: srcRoot, replica: replicaRoot, isRoot: true}}
	for len(stack) > 0 {
		pair := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		subdirs, err := r.reconcileDir(pair, exec)
		if err != nil {
			stats.Duration = time.Since(start)
			return stats, err
		}
		// reversed, so that subdirectories are popped in name order
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

//reconcileDir handles the direct entries of one pair: propagate first, then prune.
//It returns the subdirectory pairs that still have to be reconciled.
func (r *reconciler) reconcileDir(pair dirPair, exec *executor) ([]dirPair, error) {
	if err := exec.ensureDir(pair); err != nil {
		return nil, err
	}
	entries, err := r.scanner.scan(pair)
	if err != nil {
		return nil, err
	}

	var subdirs []dirPair
	for _, name := range entries.SourceNames() {
		entry, _ := entries.Get(name)
		if entry.IsSyncRequired() {
			if err := exec.execute(model.NewOperation(entry)); err != nil {
				return nil, err
			}
		}
		if entry.SrcPathInfo.IsDir {
			subdirs = append(subdirs, dirPair{src: entry.SrcPathInfo.FullPath, replica: entry.CopyPathInfo.FullPath})
		}
	}

	for _, name := range entries.ReplicaOnlyNames() {
		entry, _ := entries.Get(name)
		if err := exec.execute(model.NewOperation(entry)); err != nil {
			return nil, err
		}
	}
	return subdirs, nil
}
