package anak

import (
	"errors"

	"github.com/posyandu/posyandu/pkg/dates"
)

// ErrNotFound is returned when a child id does not resolve.
var ErrNotFound = errors.New("anak not found")

// Anak is a child profile. This service only reads it; registration and
// profile management belong to another surface.
type Anak struct {
	ID           int64      `db:"id" json:"id"`
	Nama         string     `db:"nama" json:"nama"`
	TanggalLahir dates.Date `db:"tanggal_lahir" json:"tanggal_lahir"`
}
