package settings

import (
	"dirmirror/internal/log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	base := t.TempDir()
	srcDir := filepath.Join(base, "src")
	binDir := filepath.Join(base, "bin")
	someFile := filepath.Join(base, "file.txt")
	require.NoError(t, os.MkdirAll(srcDir, os.ModePerm))
	require.NoError(t, os.MkdirAll(binDir, os.ModePerm))
	require.NoError(t, os.WriteFile(someFile, []byte("x"), 0o644))
	exePath := filepath.Join(binDir, "dirmirror")
	logFile := filepath.Join(base, "sync.log")
	defaultFlags := Flags{LogLevel: log.InfoLevel, LogToStd: true}

	tests := []struct {
		name        string
		commandArgs []string
		flags       Flags
		exePath     string
		wantErr     string
		want        *Settings
	}{
		{name: "no args", commandArgs: nil, flags: defaultFlags, exePath: exePath, wantErr: "exactly three arguments"},
		{name: "not enough args", commandArgs: []string{srcDir, logFile}, flags: defaultFlags, exePath: exePath,
			wantErr: "exactly three arguments"},
		{name: "too many args", commandArgs: []string{srcDir, logFile, "5", "extra"}, flags: defaultFlags,
			exePath: exePath, wantErr: "exactly three arguments"},
		{name: "non-integer interval", commandArgs: []string{srcDir, logFile, "1.5"}, flags: defaultFlags,
			exePath: exePath, wantErr: "must be an integer"},
		{name: "negative interval", commandArgs: []string{srcDir, logFile, "-1"}, flags: defaultFlags,
			exePath: exePath, wantErr: "cannot be negative"},
		{name: "missing source", commandArgs: []string{filepath.Join(base, "nope"), logFile, "5"},
			flags: defaultFlags, exePath: exePath, wantErr: "does not exist"},
		{name: "source is a file", commandArgs: []string{someFile, logFile, "5"}, flags: defaultFlags,
			exePath: exePath, wantErr: "is not a directory path"},
		{name: "bad level", commandArgs: []string{srcDir, logFile, "5"}, flags: Flags{LogLevel: "nope"},
			exePath: exePath, wantErr: "does not exist"},
		{name: "replica inside source", commandArgs: []string{base, logFile, "5"}, flags: defaultFlags,
			exePath: exePath, wantErr: "cannot be inside the source folder"},
		{name: "unknown executable", commandArgs: []string{srcDir, logFile, "5"}, flags: defaultFlags,
			exePath: "", wantErr: "executable location is unknown"},
		{
			name:        "valid args",
			commandArgs: []string{srcDir, logFile, "3"},
			flags:       Flags{LogLevel: "DEBUG", LogToStd: false, Once: true},
			exePath:     exePath,
			want: &Settings{
				SrcDir:     srcDir,
				ReplicaDir: filepath.Join(binDir, ReplicaDirName),
				LogFile:    logFile,
				Interval:   3 * time.Second,
				LogLevel:   log.DebugLevel,
				LogToStd:   false,
				Once:       true,
			},
		},
		{
			name:        "zero interval",
			commandArgs: []string{srcDir, logFile, "0"},
			flags:       defaultFlags,
			exePath:     exePath,
			want: &Settings{
				SrcDir:     srcDir,
				ReplicaDir: filepath.Join(binDir, ReplicaDirName),
				LogFile:    logFile,
				Interval:   0,
				LogLevel:   log.InfoLevel,
				LogToStd:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requires := require.New(t)

			stg, err := New(tt.commandArgs, tt.flags, tt.exePath)

			if tt.wantErr != "" {
				requires.ErrorContains(err, tt.wantErr)
				requires.Nil(stg)
				return
			}
			requires.NoError(err)
			requires.NotNil(stg)
			requires.Equal(*tt.want, *stg)
		})
	}
}

func TestNewRejectsSourceInsideReplica(t *testing.T) {
	requires := require.New(t)
	base := t.TempDir()
	srcDir := filepath.Join(base, ReplicaDirName, "data")
	requires.NoError(os.MkdirAll(srcDir, os.ModePerm))

	stg, err := New([]string{srcDir, filepath.Join(base, "sync.log"), "1"}, Flags{LogLevel: log.InfoLevel},
		filepath.Join(base, "dirmirror"))

	requires.ErrorContains(err, "cannot be inside the replica directory")
	requires.Nil(stg)
}

func TestNewRejectsReplicaInsideLinkedSource(t *testing.T) {
	requires := require.New(t)

	// 1. arrange: the executable lives in the source, which is passed through a symlink
	base := t.TempDir()
	realDir := filepath.Join(base, "real")
	requires.NoError(os.MkdirAll(realDir, os.ModePerm))
	exe := filepath.Join(realDir, "dirmirror")
	requires.NoError(os.WriteFile(exe, []byte("#!"), 0o755))
	linkedSrc := filepath.Join(base, "linked")
	requires.NoError(os.Symlink(realDir, linkedSrc))

	// 2. act
	stg, err := New([]string{linkedSrc, filepath.Join(base, "sync.log"), "1"}, Flags{LogLevel: log.InfoLevel}, exe)

	// 3. assert
	requires.ErrorContains(err, "cannot be inside the source folder")
	requires.Nil(stg)
}

func TestReplicaDirForResolvesSymlinks(t *testing.T) {
	requires := require.New(t)
	base := t.TempDir()
	realDir := filepath.Join(base, "real")
	linkDir := filepath.Join(base, "links")
	requires.NoError(os.MkdirAll(realDir, os.ModePerm))
	requires.NoError(os.MkdirAll(linkDir, os.ModePerm))
	exe := filepath.Join(realDir, "dirmirror")
	requires.NoError(os.WriteFile(exe, []byte("#!"), 0o755))
	link := filepath.Join(linkDir, "dirmirror")
	requires.NoError(os.Symlink(exe, link))

	replica, err := ReplicaDirFor(link)

	requires.NoError(err)
	wantDir, err := filepath.EvalSymlinks(realDir)
	requires.NoError(err)
	requires.Equal(filepath.Join(wantDir, ReplicaDirName), replica)
}
