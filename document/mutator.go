package document

import (
	"context"
	"io"
)

// Mutator edits a document's page structure. Every successful edit gives
// the document a new identity.
type Mutator interface {
	ID() string
	PageCount() int
	Rotate(ctx context.Context, page, degrees int) error
	Delete(ctx context.Context, pages ...int) error
	Reorder(ctx context.Context, order []int) error
	Merge(ctx context.Context, docs ...io.ReadSeeker) error
	Split(ctx context.Context, pages []int) ([]byte, error)
	Export(w io.Writer) error
}

// Op names a structural edit.
type Op string

// Edits reported to observers.
const (
	OpOpen     Op = "open"
	OpRotate   Op = "rotate"
	OpDelete   Op = "delete"
	OpReorder  Op = "reorder"
	OpMerge    Op = "merge"
	OpOptimize Op = "optimize"
)

// Change is sent to observers after an edit completes.
type Change struct {
	Op        Op
	ID        string
	PageCount int
}

// Observer is called after every successful edit.
type Observer func(Change)
