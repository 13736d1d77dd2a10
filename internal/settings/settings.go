package settings

import (
	"dirmirror/internal/log"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

//ReplicaDirName is the name of the replica directory created alongside the executable.
const ReplicaDirName = "replica"

type Settings struct {
	SrcDir     string
	ReplicaDir string
	LogFile    string
	Interval   time.Duration
	LogLevel   log.Level
	LogToStd   bool
	Once       bool
}

//Flags are the optional command line switches; the positional arguments are validated by New.
type Flags struct {
	LogLevel string
	LogToStd bool
	Once     bool
}

//New builds the settings from the positional arguments <source_folder> <log_file_path> <sync_interval_seconds>.
//The replica directory is derived from exePath, the location of the running executable.
func New(commandArgs []string, flags Flags, exePath string) (*Settings, error) {
	if len(commandArgs) != 3 {
		return nil, fmt.Errorf("exactly three arguments (source folder, log file path, sync interval in seconds) "+
			"must present, got %d", len(commandArgs))
	}

	seconds, err := strconv.Atoi(commandArgs[2])
	if err != nil {
		return nil, fmt.Errorf("sync interval must be an integer, got %q", commandArgs[2])
	}
	if seconds < 0 {
		return nil, fmt.Errorf("sync interval cannot be negative, got %d", seconds)
	}

	stg := &Settings{
		Interval: time.Duration(seconds) * time.Second,
		LogToStd: flags.LogToStd,
		Once:     flags.Once,
	}
	if stg.SrcDir, err = filepath.Abs(commandArgs[0]); err != nil {
		return nil, fmt.Errorf("path %q cannot be converted to absolute: %v", commandArgs[0], err)
	}
	if err = validateDirectoryPath(stg.SrcDir); err != nil {
		return nil, fmt.Errorf("source folder %q is invalid: %w", commandArgs[0], err)
	}
	if stg.LogFile, err = filepath.Abs(commandArgs[1]); err != nil {
		return nil, fmt.Errorf("path %q cannot be converted to absolute: %v", commandArgs[1], err)
	}

	level, ok := log.ParseLevel(flags.LogLevel)
	if !ok {
		return nil, fmt.Errorf("logging level %q does not exist", flags.LogLevel)
	}
	stg.LogLevel = level

	if stg.ReplicaDir, err = ReplicaDirFor(exePath); err != nil {
		return nil, err
	}
	if err = stg.validateDirsDoNotOverlap(); err != nil {
		return nil, err
	}
	return stg, nil
}

//ReplicaDirFor returns the replica directory located alongside the (symlink-resolved) executable.
func ReplicaDirFor(exePath string) (string, error) {
	if exePath == "" {
		return "", errors.New("the executable location is unknown")
	}
	resolved, err := filepath.EvalSymlinks(exePath)
	if err != nil {
		resolved = exePath
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("path %q cannot be converted to absolute: %v", exePath, err)
	}
	return filepath.Join(filepath.Dir(resolved), ReplicaDirName), nil
}

//validateDirsDoNotOverlap rejects a replica inside the source (it would be mirrored into itself) and vice versa.
//Both paths are compared symlink-resolved, so a linked source can't hide the overlap.
func (stg *Settings) validateDirsDoNotOverlap() error {
	srcDir, replicaDir := resolveSymlinks(stg.SrcDir), resolveSymlinks(stg.ReplicaDir)
	if srcDir == replicaDir {
		return errors.New("the directories for synchronization cannot be the same")
	}
	if isWithin(replicaDir, srcDir) {
		return fmt.Errorf("the replica directory %q cannot be inside the source folder %q", stg.ReplicaDir, stg.SrcDir)
	}
	if isWithin(srcDir, replicaDir) {
		return fmt.Errorf("the source folder %q cannot be inside the replica directory %q", stg.SrcDir, stg.ReplicaDir)
	}
	return nil
}

//resolveSymlinks resolves the longest existing prefix of path; the replica may not exist yet.
func resolveSymlinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return filepath.Join(resolveSymlinks(parent), filepath.Base(path))
}

func (stg *Settings) String() string {
	return fmt.Sprintf("source: %s, replica: %s, log file: %s, interval: %v, log level: %s, once: %t",
		stg.SrcDir, stg.ReplicaDir, stg.LogFile, stg.Interval, stg.LogLevel, stg.Once)
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func validateDirectoryPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.New("it does not exist")
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path %q is not a directory path", path)
	}
	return nil
}
