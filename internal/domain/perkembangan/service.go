package perkembangan

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/posyandu/posyandu/internal/domain/anak"
	"github.com/posyandu/posyandu/pkg/dates"
)

// decimal(5,2) holds values below 1000 with two fractional digits.
var maxMeasurement = decimal.NewFromInt(1000)

// ValidationError carries per-field messages for a rejected write. Fields
// are keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// WriteInput is the unvalidated body of a create or revise request. Pointer
// fields distinguish absent from zero.
type WriteInput struct {
	AnakID      *int64   `json:"anak_id"`
	Tanggal     *string  `json:"tanggal"`
	BeratBadan  *Decimal `json:"berat_badan"`
	TinggiBadan *Decimal `json:"tinggi_badan"`
}

// ChildRecords is the list result for one child.
type ChildRecords struct {
	Perkembangan []*Perkembangan
	AnakID       int64
	RecordsCount int
}

// Service validates writes before they reach storage and keeps the revision
// discipline out of the handlers.
type Service struct {
	repo     Repository
	anakRepo anak.Repository
}

func NewService(repo Repository, anakRepo anak.Repository) *Service {
	return &Service{repo: repo, anakRepo: anakRepo}
}

// validate checks the payload and resolves the child. All failures are
// collected so the client sees every bad field at once; nothing is written
// when validation fails.
func (s *Service) validate(ctx context.Context, in WriteInput) (WriteRecord, error) {
	fields := make(map[string]string)
	var rec WriteRecord

	switch {
	case in.AnakID == nil:
		fields["anak_id"] = "anak_id is required"
	default:
		rec.AnakID = *in.AnakID
		if _, err := s.anakRepo.GetByID(ctx, rec.AnakID); err != nil {
			if errors.Is(err, anak.ErrNotFound) {
				fields["anak_id"] = "the selected anak_id does not exist"
			} else {
				return rec, fmt.Errorf("resolve anak %d: %w", rec.AnakID, err)
			}
		}
	}

	if in.Tanggal == nil {
		fields["tanggal"] = "tanggal is required"
	} else if d, err := dates.Parse(*in.Tanggal); err != nil {
		fields["tanggal"] = "tanggal must be a valid date (YYYY-MM-DD)"
	} else {
		rec.Tanggal = d
	}

	checkMeasurement(fields, "berat_badan", in.BeratBadan, &rec.BeratBadan)
	checkMeasurement(fields, "tinggi_badan", in.TinggiBadan, &rec.TinggiBadan)

	if len(fields) > 0 {
		return rec, &ValidationError{Fields: fields}
	}
	return rec, nil
}

func checkMeasurement(fields map[string]string, name string, in *Decimal, out *Decimal) {
	switch {
	case in == nil:
		fields[name] = name + " is required"
	case in.IsNegative():
		fields[name] = name + " must be at least 0"
	case in.GreaterThanOrEqual(maxMeasurement):
		fields[name] = name + " must be less than 1000"
	default:
		*out = *in
	}
}

func (s *Service) ListByAnak(ctx context.Context, anakID int64) (*ChildRecords, error) {
	items, err := s.repo.ListByAnak(ctx, anakID)
	if err != nil {
		return nil, fmt.Errorf("list perkembangan: %w", err)
	}
	return &ChildRecords{
		Perkembangan: items,
		AnakID:       anakID,
		RecordsCount: len(items),
	}, nil
}

// Record creates a new genesis observation.
func (s *Service) Record(ctx context.Context, in WriteInput) (*Perkembangan, error) {
	rec, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create perkembangan: %w", err)
	}
	return created, nil
}

// Revise appends a successor to the record at id and supersedes it. The
// predecessor's payload is never touched.
func (s *Service) Revise(ctx context.Context, id int64, in WriteInput) (newRec, oldRec *Perkembangan, err error) {
	rec, err := s.validate(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	newRec, oldRec, err = s.repo.Revise(ctx, id, rec)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("revise perkembangan %d: %w", id, err)
	}
	return newRec, oldRec, nil
}

// Delete soft-deletes the record; revision chain links stay intact.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete perkembangan %d: %w", id, err)
	}
	return nil
}
