package iout

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"
	"time"

	"github.com/spf13/afero"
)

//ErrNotDir is returned when a path that must be a directory exists as something else.
var ErrNotDir = errors.New("not a directory")

//IsErrNotDir reports whether err means that a path is not a directory (on any afero.Fs).
func IsErrNotDir(err error) bool {
	return errors.Is(err, ErrNotDir) || errors.Is(err, syscall.ENOTDIR)
}

//EnsureDirExists creates the directory (with all missing parents) if it's absent.
//It returns true if the directory was created by this call.
func EnsureDirExists(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("cannot make dir %q: %w", path, ErrNotDir)
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("cannot make dir %q: %w", path, err)
	}
	if err := fsys.MkdirAll(path, os.ModePerm); err != nil {
		return false, fmt.Errorf("cannot make dir %q: %w", path, err)
	}
	return true, nil
}

//Lstat describes the entry itself, not the target of a symlink, if the filesystem supports that.
func Lstat(fsys afero.Fs, path string) (fs.FileInfo, error) {
	if lst, ok := fsys.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

//RemoveFile removes a single non-directory entry.
func RemoveFile(fsys afero.Fs, path string) error {
	if err := fsys.Remove(path); err != nil {
		return fmt.Errorf("cannot remove entry: %w", err)
	}
	return nil
}

//RemoveTree removes a directory and everything beneath it.
func RemoveTree(fsys afero.Fs, path string) error {
	if err := fsys.RemoveAll(path); err != nil {
		return fmt.Errorf("cannot remove dir: %w", err)
	}
	return nil
}

//CopyFile copies the entry at the source path (data, permission bits) to the specified destination,
//overwriting it if it exists. It sets for the copied file the same modTime as the source file modTime.
func CopyFile(fsys afero.Fs, srcPath, dstPath string, srcInfo fs.FileInfo) error {
	perm := srcInfo.Mode().Perm()
	if err := copyFileContents(fsys, srcPath, dstPath, perm); err != nil {
		return fmt.Errorf("cannot copy file: %w", err)
	}
	// the umask may have narrowed the bits on creation, and an existing file keeps its old ones
	if err := fsys.Chmod(dstPath, perm); err != nil {
		return fmt.Errorf("cannot set file mode: %w", err)
	}
	if err := fsys.Chtimes(dstPath, time.Now(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("cannot set file modification time: %w", err)
	}
	return nil
}

func copyFileContents(fsys afero.Fs, src, dst string, perm fs.FileMode) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer in.Close()

	if err := makeOwnerWritable(fsys, dst); err != nil {
		return err
	}
	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm|0o200)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close file: %w", cerr)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("cannot read/write file content: %w", err)
	}
	return out.Sync()
}

//makeOwnerWritable lets an existing read-only copy be overwritten; CopyFile restores the source bits afterwards.
func makeOwnerWritable(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot stat destination file: %w", err)
	}
	if info.IsDir() || info.Mode().Perm()&0o200 != 0 {
		return nil
	}
	if err := fsys.Chmod(path, info.Mode().Perm()|0o200); err != nil {
		return fmt.Errorf("cannot make destination file writable: %w", err)
	}
	return nil
}
