package dirsyncer

import (
	"dirmirror/internal/log"
	"dirmirror/internal/model"
	"path/filepath"

	"github.com/spf13/afero"
)

//dirPair is a source directory and the replica directory that has to mirror it.
type dirPair struct {
	src, replica string
	isRoot       bool
}

type dirScanner struct {
	log log.Logger
	fs  afero.Fs
}

func newDirScanner(logger log.Logger, fsys afero.Fs) *dirScanner {
	return &dirScanner{log: logger, fs: fsys}
}

//scan lists the source and then the replica directory of the pair, one read per directory.
//The two listings are not an atomic snapshot: concurrent changes between them are picked up by the next pass.
//Source entries are classified following symlinks; replica-only entries keep their listing (lstat) info,
//they are re-checked anyway right before removal.
func (d *dirScanner) scan(pair dirPair) (*model.DirEntries, error) {
	entries := model.NewDirEntries()

	srcInfos, err := afero.ReadDir(d.fs, pair.src)
	if err != nil {
		return nil, &SyncError{Op: "list source dir", Path: pair.src, Err: err}
	}
	for _, fi := range srcInfos {
		fullPath := filepath.Join(pair.src, fi.Name())
		info, err := d.fs.Stat(fullPath)
		if err != nil {
			return nil, &SyncError{Op: "stat source entry", Path: fullPath, Err: err}
		}
		entries.UpdateValueByKey(fi.Name(), func(e *model.EntryInfo) {
			e.SetSrcPathInfo(model.NewPathInfo(fullPath, info))
			e.CopyPathInfo.FullPath = filepath.Join(pair.replica, fi.Name())
		})
	}

	copyInfos, err := afero.ReadDir(d.fs, pair.replica)
	if err != nil {
		return nil, &SyncError{Op: "list replica dir", Path: pair.replica, Err: err}
	}
	for _, fi := range copyInfos {
		fullPath := filepath.Join(pair.replica, fi.Name())
		info := fi
		if e, ok := entries.Get(fi.Name()); ok && e.SrcPathInfo.Exists {
			// shared names are compared the same way the source side is classified
			if st, err := d.fs.Stat(fullPath); err == nil {
				info = st
			}
		}
		entries.UpdateValueByKey(fi.Name(), func(e *model.EntryInfo) {
			e.SetCopyPathInfo(model.NewPathInfo(fullPath, info))
		})
	}

	d.log.Debug("directory pair scanned", log.String("src", pair.src), log.String("replica", pair.replica),
		log.Int("srcEntries", len(srcInfos)), log.Int("replicaEntries", len(copyInfos)))
	return entries, nil
}
