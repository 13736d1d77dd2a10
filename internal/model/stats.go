package model

import (
	"fmt"
	"time"
)

//PassStats counts the mutating actions of one synchronization pass.
type PassStats struct {
	DirsCreated  int
	FilesCopied  int
	FilesUpdated int
	FilesRemoved int
	DirsRemoved  int
	Duration     time.Duration
}

//Actions is the total number of mutating actions; an idempotent repeated pass has zero.
func (s PassStats) Actions() int {
	return s.DirsCreated + s.FilesCopied + s.FilesUpdated + s.FilesRemoved + s.DirsRemoved
}

func (s PassStats) String() string {
	return fmt.Sprintf("dirs created: %d, files copied: %d, files updated: %d, files removed: %d, dirs removed: %d, took %v",
		s.DirsCreated, s.FilesCopied, s.FilesUpdated, s.FilesRemoved, s.DirsRemoved, s.Duration)
}
