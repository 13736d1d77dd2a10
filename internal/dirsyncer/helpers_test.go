package dirsyncer

import (
	"dirmirror/internal/log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	t1 = time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 = t1.Add(time.Hour)
)

func newObservedLogger() (log.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return log.NewWithCore(core), logs
}

func writeFile(req *require.Assertions, fsys afero.Fs, path, content string, modTime time.Time) {
	req.NoError(fsys.MkdirAll(filepath.Dir(path), os.ModePerm))
	req.NoError(afero.WriteFile(fsys, path, []byte(content), 0o644))
	req.NoError(fsys.Chtimes(path, modTime, modTime))
}

func requireFile(req *require.Assertions, fsys afero.Fs, path, content string) os.FileInfo {
	data, err := afero.ReadFile(fsys, path)
	req.NoError(err)
	req.Equal(content, string(data))
	info, err := fsys.Stat(path)
	req.NoError(err)
	return info
}

func requireAbsent(req *require.Assertions, fsys afero.Fs, path string) {
	exists, err := afero.Exists(fsys, path)
	req.NoError(err)
	req.False(exists, "%s must not exist", path)
}

//treeOf returns the relative paths of all entries under root, directories marked with a trailing slash.
func treeOf(req *require.Assertions, fsys afero.Fs, root string) []string {
	var paths []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		if info.IsDir() {
			rel += "/"
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	req.NoError(err)
	return paths
}

func messages(logs *observer.ObservedLogs, lvl zapcore.Level) []string {
	var msgs []string
	for _, entry := range logs.All() {
		if entry.Level == lvl {
			msgs = append(msgs, entry.Message)
		}
	}
	return msgs
}
