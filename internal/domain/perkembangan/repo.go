package perkembangan

import (
	"context"

	"github.com/posyandu/posyandu/pkg/dates"
)

// WriteRecord carries the validated payload of a create or revise.
type WriteRecord struct {
	AnakID      int64
	Tanggal     dates.Date
	BeratBadan  Decimal
	TinggiBadan Decimal
}

// Repository persists growth observations under the append-only revision
// discipline.
type Repository interface {
	// ListByAnak returns all non-deleted rows for a child ordered by
	// tanggal ascending, superseded rows included.
	ListByAnak(ctx context.Context, anakID int64) ([]*Perkembangan, error)

	// GetByID returns a non-deleted row by id, ErrNotFound otherwise.
	GetByID(ctx context.Context, id int64) (*Perkembangan, error)

	// Create inserts a genesis row.
	Create(ctx context.Context, rec WriteRecord) (*Perkembangan, error)

	// Revise atomically inserts a successor of the row at id and marks the
	// predecessor superseded. Returns ErrNotFound if the row is missing or
	// deleted, ErrConflict if it was already revised.
	Revise(ctx context.Context, id int64, rec WriteRecord) (newRec, oldRec *Perkembangan, err error)

	// SoftDelete stamps deleted_at without touching the chain links.
	SoftDelete(ctx context.Context, id int64) error
}
