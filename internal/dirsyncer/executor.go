package dirsyncer

import (
	"dirmirror/internal/log"
	"dirmirror/internal/model"
	"dirmirror/pkg/helpers/iout"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

//executor is responsible for executing sync operations in order to eliminate
//the difference between the source and replica directories.
//Every mutating action is logged at info level and counted in the pass stats.
type executor struct {
	log   log.Logger
	fs    afero.Fs
	stats *model.PassStats
}

func newExecutor(logger log.Logger, fsys afero.Fs, stats *model.PassStats) *executor {
	return &executor{log: logger, fs: fsys, stats: stats}
}

func (e *executor) ensureDir(pair dirPair) error {
	created, err := iout.EnsureDirExists(e.fs, pair.replica)
	if err != nil {
		if iout.IsErrNotDir(err) {
			return &SyncError{Op: "replica dir is occupied by a non-directory", Path: pair.replica, Err: err}
		}
		return &SyncError{Op: "create replica dir", Path: pair.replica, Err: err}
	}
	if !created {
		return nil
	}
	e.stats.DirsCreated++
	if pair.isRoot {
		e.log.Info("Replica folder created: " + pair.replica)
	} else {
		e.log.Info("Directory created: " + pair.replica)
	}
	return nil
}

func (e *executor) execute(op *model.Operation) error {
	e.log.Debug("operation execution will start now", log.Uint64("opID", op.ID), log.String("kind", string(op.Kind)))

	var err error
	switch op.Kind {
	case model.OpKindNone:
	case model.OpKindCopy, model.OpKindUpdate:
		err = e.copyFile(op)
	case model.OpKindReplace:
		err = e.replace(op)
	case model.OpKindRemove:
		err = e.remove(op.CopyPath)
	default:
		err = fmt.Errorf("unknown operation kind %q", op.Kind)
	}

	if err != nil {
		op.Fail()
		e.finished(op)
		var syncErr *SyncError
		if !errors.As(err, &syncErr) {
			err = &SyncError{Op: string(op.Kind), Path: op.CopyPath, Err: err}
		}
		return err
	}
	op.Complete()
	e.finished(op)
	return nil
}

func (e *executor) finished(op *model.Operation) {
	e.log.Debug("operation execution finished", log.Uint64("opID", op.ID), log.String("kind", string(op.Kind)),
		log.String("status", string(op.Status)), log.Duration("took", op.Duration()))
}

//copyFile re-stats the source right before copying, so the copy carries the freshest modification time.
func (e *executor) copyFile(op *model.Operation) error {
	srcInfo, err := e.fs.Stat(op.SrcPath)
	if err != nil {
		return &SyncError{Op: "stat source file", Path: op.SrcPath, Err: err}
	}
	if err := iout.CopyFile(e.fs, op.SrcPath, op.CopyPath, srcInfo); err != nil {
		return &SyncError{Op: "copy file", Path: op.SrcPath, Err: err}
	}
	if op.Kind == model.OpKindUpdate {
		e.stats.FilesUpdated++
	} else {
		e.stats.FilesCopied++
	}
	e.log.Info(fmt.Sprintf("File copied: %s -> %s", op.SrcPath, op.CopyPath))
	return nil
}

//replace resolves a dir/file type conflict by deleting the replica entry first.
//A source directory is then recreated when its own pair is reconciled; a source file is copied right away.
func (e *executor) replace(op *model.Operation) error {
	if err := e.remove(op.CopyPath); err != nil {
		return err
	}
	if op.SrcIsDir {
		return nil
	}
	return e.copyFile(op)
}

//remove classifies the replica entry by its current on-disk state, not by the earlier listing.
//Symlinks are removed as links and never followed.
func (e *executor) remove(path string) error {
	info, err := iout.Lstat(e.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.log.Debug("entry has already gone, nothing to remove", log.String("path", path))
			return nil
		}
		return &SyncError{Op: "stat replica entry", Path: path, Err: err}
	}

	if info.IsDir() {
		if err := iout.RemoveTree(e.fs, path); err != nil {
			return &SyncError{Op: "remove dir", Path: path, Err: err}
		}
		e.stats.DirsRemoved++
		e.log.Info("Directory removed: " + path)
		return nil
	}

	if err := iout.RemoveFile(e.fs, path); err != nil {
		return &SyncError{Op: "remove file", Path: path, Err: err}
	}
	e.stats.FilesRemoved++
	e.log.Info("File removed: " + path)
	return nil
}
