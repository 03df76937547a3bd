package perkembangan

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/posyandu/posyandu/pkg/dates"
)

var (
	// ErrNotFound is returned when a growth record id does not resolve to a
	// live row.
	ErrNotFound = errors.New("perkembangan not found")
	// ErrConflict is returned when a revision races another revision of the
	// same record.
	ErrConflict = errors.New("perkembangan already revised")
)

// Decimal is a fixed-point measurement stored as decimal(5,2). It marshals
// as a string with two fractional digits so clients never see float noise.
type Decimal struct {
	decimal.Decimal
}

func NewDecimal(d decimal.Decimal) Decimal { return Decimal{Decimal: d} }

// DecimalFromString parses a decimal from its wire form.
func DecimalFromString(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return Decimal{Decimal: d}, nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	return d.Decimal.UnmarshalJSON(b)
}

func (d *Decimal) Scan(src interface{}) error {
	return d.Decimal.Scan(src)
}

func (d Decimal) Value() (driver.Value, error) {
	return d.Decimal.Value()
}

// Perkembangan is one growth observation. Edits never mutate these rows:
// a revision inserts a successor and flips IsUpdated on the predecessor, so
// the chain UpdatedFromID/UpdatedByID preserves full history. Deletion is
// soft via DeletedAt.
type Perkembangan struct {
	ID            int64      `db:"id" json:"id"`
	AnakID        int64      `db:"anak_id" json:"anak_id"`
	Tanggal       dates.Date `db:"tanggal" json:"tanggal"`
	BeratBadan    Decimal    `db:"berat_badan" json:"berat_badan"`
	TinggiBadan   Decimal    `db:"tinggi_badan" json:"tinggi_badan"`
	UpdatedFromID *int64     `db:"updated_from_id" json:"updated_from_id"`
	IsUpdated     bool       `db:"is_updated" json:"is_updated"`
	UpdatedByID   *int64     `db:"updated_by_id" json:"updated_by_id"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at" json:"deleted_at"`
}

// IsCurrent reports whether the row is the live tip of its chain.
func (p *Perkembangan) IsCurrent() bool {
	return !p.IsUpdated && p.DeletedAt == nil
}
