package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewOperation(t *testing.T) {
	requires := require.New(t)
	entry := EntryInfo{
		Name:         "a.txt",
		SrcPathInfo:  PathInfo{Exists: true, FullPath: "/src/a.txt", ModTime: time.Unix(20, 0)},
		CopyPathInfo: PathInfo{Exists: true, FullPath: "/replica/a.txt", ModTime: time.Unix(10, 0)},
	}

	first, second := NewOperation(entry), NewOperation(entry)

	requires.Equal(OpKindUpdate, first.Kind)
	requires.Equal(OpStatusScheduled, first.Status)
	requires.Equal("/src/a.txt", first.SrcPath)
	requires.Equal("/replica/a.txt", first.CopyPath)
	requires.Nil(first.CompletedAt)
	requires.Zero(first.Duration())
	requires.Greater(second.ID, first.ID)
}

func TestOperation_StatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		finish func(op *Operation)
		want   OperationStatus
	}{
		{name: "completed", finish: (*Operation).Complete, want: OpStatusCompleted},
		{name: "failed", finish: (*Operation).Fail, want: OpStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation(EntryInfo{SrcPathInfo: PathInfo{Exists: true}})
			tt.finish(op)
			require.Equal(t, tt.want, op.Status)
			require.NotNil(t, op.CompletedAt)
			require.GreaterOrEqual(t, op.Duration(), time.Duration(0))
			require.Equal(t, op.CompletedAt.Sub(op.ScheduledAt), op.Duration())
		})
	}
}

func TestPassStats_Actions(t *testing.T) {
	require.Zero(t, PassStats{Duration: time.Second}.Actions())
	require.Equal(t, 15, PassStats{DirsCreated: 1, FilesCopied: 2, FilesUpdated: 3, FilesRemoved: 4, DirsRemoved: 5}.Actions())
}
