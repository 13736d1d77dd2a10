package model

import (
	"io/fs"
	"time"
)

//PathInfo holds info about one dir entry on one side (source OR replica) of a directory pair.
type PathInfo struct {
	Exists   bool
	FullPath string
	IsDir    bool
	Size     int64 // in bytes
	Mode     fs.FileMode
	ModTime  time.Time
}

//NewPathInfo fills the path info from a stat result of an existing entry.
func NewPathInfo(fullPath string, fi fs.FileInfo) PathInfo {
	return PathInfo{
		Exists:   true,
		FullPath: fullPath,
		IsDir:    fi.IsDir(),
		Size:     fi.Size(),
		Mode:     fi.Mode(),
		ModTime:  fi.ModTime(),
	}
}

//EntryInfo holds info about the same named entry in BOTH directories of a pair (source and replica).
type EntryInfo struct {
	Name                      string
	SrcPathInfo, CopyPathInfo PathInfo
}

//SetSrcPathInfo is a convenience setter for the directory scanner.
func (e *EntryInfo) SetSrcPathInfo(pi PathInfo) {
	e.SrcPathInfo = pi
}

//SetCopyPathInfo is a convenience setter for the directory scanner.
func (e *EntryInfo) SetCopyPathInfo(pi PathInfo) {
	e.CopyPathInfo = pi
}

//ResolveOperationKind decides what has to be done with the replica entry so that it matches the source one.
//A source directory that already has a directory counterpart needs nothing at this level,
//its contents are handled when the pair of subdirectories is reconciled.
//Files are compared by modification time only, and only a strictly newer source triggers an update.
func (e *EntryInfo) ResolveOperationKind() OperationKind {
	src, cp := e.SrcPathInfo, e.CopyPathInfo
	switch {
	case !src.Exists && !cp.Exists:
		return OpKindNone
	case !src.Exists:
		return OpKindRemove
	case !cp.Exists:
		if src.IsDir {
			return OpKindNone // the directory is created when its pair is reconciled
		}
		return OpKindCopy
	case src.IsDir != cp.IsDir:
		return OpKindReplace
	case src.IsDir:
		return OpKindNone
	case src.ModTime.After(cp.ModTime):
		return OpKindUpdate
	default:
		return OpKindNone
	}
}

//IsSyncRequired reports whether the replica entry has to be changed at this directory level.
func (e *EntryInfo) IsSyncRequired() bool {
	return e.ResolveOperationKind() != OpKindNone
}
