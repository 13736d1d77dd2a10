package model

import (
	"sync/atomic"
	"time"
)

//OperationStatus is a status of a sync operation.
type OperationStatus string

const (
	OpStatusScheduled OperationStatus = "scheduled"
	OpStatusCompleted OperationStatus = "completed"
	OpStatusFailed    OperationStatus = "failed"
)

type OperationKind string

const (
	OpKindNone    OperationKind = "none"
	OpKindCopy    OperationKind = "copy"    // the entry is absent in the replica
	OpKindUpdate  OperationKind = "update"  // the replica file is older than the source one
	OpKindReplace OperationKind = "replace" // the entry is a dir on one side and a file on the other
	OpKindRemove  OperationKind = "remove"  // the entry is absent in the source
)

var operationsCounter uint64

func generateOperationID() uint64 {
	return atomic.AddUint64(&operationsCounter, 1)
}

// Operation - synchronization operation between the dir entry in the source directory and same entry in the replica directory.
type Operation struct {
	ID          uint64
	Status      OperationStatus
	Kind        OperationKind
	SrcPath     string
	CopyPath    string
	SrcIsDir    bool
	ScheduledAt time.Time
	CompletedAt *time.Time
}

//NewOperation schedules an operation for the entry; kind is resolved from the entry info.
func NewOperation(entry EntryInfo) *Operation {
	return &Operation{
		ID:          generateOperationID(),
		Status:      OpStatusScheduled,
		Kind:        entry.ResolveOperationKind(),
		SrcPath:     entry.SrcPathInfo.FullPath,
		CopyPath:    entry.CopyPathInfo.FullPath,
		SrcIsDir:    entry.SrcPathInfo.IsDir,
		ScheduledAt: time.Now(),
	}
}

func (op *Operation) Complete() {
	now := time.Now()
	op.CompletedAt = &now
	op.Status = OpStatusCompleted
}

func (op *Operation) Fail() {
	now := time.Now()
	op.CompletedAt = &now
	op.Status = OpStatusFailed
}

//Duration is the time between scheduling and completion, zero while the operation is not over.
func (op *Operation) Duration() time.Duration {
	if op.CompletedAt == nil {
		return 0
	}
	return op.CompletedAt.Sub(op.ScheduledAt)
}
