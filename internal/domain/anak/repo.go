package anak

import "context"

// Repository resolves child identifiers to profiles.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Anak, error)
}
