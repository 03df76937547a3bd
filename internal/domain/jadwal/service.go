package jadwal

import (
	"context"
	"fmt"
	"sort"

	"github.com/posyandu/posyandu/internal/domain/anak"
	"github.com/posyandu/posyandu/pkg/dates"
)

// Service merges the three schedule stores and applies the age-window
// filter. Results from the stores are combined in memory; any store failure
// fails the whole request rather than returning a partial merge.
type Service struct {
	anakRepo    anak.Repository
	pemeriksaan PemeriksaanRepository
	imunisasi   ImunisasiRepository
	vitamin     VitaminRepository
	clock       Clock
}

func NewService(anakRepo anak.Repository, pemeriksaan PemeriksaanRepository, imunisasi ImunisasiRepository, vitamin VitaminRepository, clock Clock) *Service {
	return &Service{
		anakRepo:    anakRepo,
		pemeriksaan: pemeriksaan,
		imunisasi:   imunisasi,
		vitamin:     vitamin,
		clock:       clock,
	}
}

// childInfoFor resolves a child and computes their age as of today. Months
// use the 30-day approximation so the vitamin windows line up with the day
// count shown next to them.
func (s *Service) childInfoFor(ctx context.Context, anakID int64, today dates.Date) (ChildInfo, error) {
	a, err := s.anakRepo.GetByID(ctx, anakID)
	if err != nil {
		return ChildInfo{}, err
	}
	ageDays := today.DaysSince(a.TanggalLahir)
	if ageDays < 0 {
		ageDays = 0
	}
	return ChildInfo{
		ID:           a.ID,
		Nama:         a.Nama,
		TanggalLahir: a.TanggalLahir,
		AgeMonths:    ageDays / 30,
		AgeDays:      ageDays,
	}, nil
}

// sortAsc orders events by date, then insertion time, then jenis, then id so
// equal-date events come out in a stable order.
func sortAsc(items []*Jadwal) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Tanggal.Equal(b.Tanggal) {
			return a.Tanggal.Before(b.Tanggal)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.Jenis != b.Jenis {
			return a.Jenis < b.Jenis
		}
		return a.ID < b.ID
	})
}

// sortDesc orders events by date descending; ties break the same way as
// sortAsc.
func sortDesc(items []*Jadwal) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Tanggal.Equal(b.Tanggal) {
			return a.Tanggal.After(b.Tanggal)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.Jenis != b.Jenis {
			return a.Jenis < b.Jenis
		}
		return a.ID < b.ID
	})
}

// AllHistorical returns every scheduled event across the three stores,
// newest date first.
func (s *Service) AllHistorical(ctx context.Context) ([]*Jadwal, error) {
	pemeriksaan, err := s.pemeriksaan.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pemeriksaan: %w", err)
	}
	imunisasi, err := s.imunisasi.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list imunisasi: %w", err)
	}
	vitamin, err := s.vitamin.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vitamin: %w", err)
	}

	merged := make([]*Jadwal, 0, len(pemeriksaan)+len(imunisasi)+len(vitamin))
	merged = append(merged, pemeriksaan...)
	merged = append(merged, imunisasi...)
	merged = append(merged, vitamin...)
	sortDesc(merged)
	return merged, nil
}

// AllUpcoming returns every scheduled event dated today or later, soonest
// first, with no age filter.
func (s *Service) AllUpcoming(ctx context.Context) ([]*Jadwal, error) {
	today := s.clock.Today()

	pemeriksaan, err := s.pemeriksaan.ListUpcoming(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list upcoming pemeriksaan: %w", err)
	}
	imunisasi, err := s.imunisasi.ListUpcoming(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list upcoming imunisasi: %w", err)
	}
	vitamin, err := s.vitamin.ListUpcoming(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list upcoming vitamin: %w", err)
	}

	merged := make([]*Jadwal, 0, len(pemeriksaan)+len(imunisasi)+len(vitamin))
	merged = append(merged, pemeriksaan...)
	merged = append(merged, imunisasi...)
	merged = append(merged, vitamin...)
	sortAsc(merged)
	return merged, nil
}

// UpcomingForChild returns the age-appropriate upcoming schedule for one
// child across all three stores. Routine checkups are never age-gated;
// immunizations and vitamins only appear while the child's age falls inside
// the type's window. An age with no matching windows simply contributes no
// rows for that store.
func (s *Service) UpcomingForChild(ctx context.Context, anakID int64) (*ChildSchedule, error) {
	today := s.clock.Today()
	child, err := s.childInfoFor(ctx, anakID, today)
	if err != nil {
		return nil, err
	}

	pemeriksaan, err := s.pemeriksaan.ListUpcoming(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list upcoming pemeriksaan: %w", err)
	}

	var imunisasi []*Jadwal
	if names := imunisasiTypeNamesFor(child.AgeDays); len(names) > 0 {
		imunisasi, err = s.imunisasi.ListUpcomingByTypeNames(ctx, today, names)
		if err != nil {
			return nil, fmt.Errorf("list upcoming imunisasi: %w", err)
		}
	}

	var vitamin []*Jadwal
	if names := vitaminTypeNamesFor(child.AgeMonths); len(names) > 0 {
		vitamin, err = s.vitamin.ListUpcomingByTypeNames(ctx, today, names)
		if err != nil {
			return nil, fmt.Errorf("list upcoming vitamin: %w", err)
		}
	}

	merged := make([]*Jadwal, 0, len(pemeriksaan)+len(imunisasi)+len(vitamin))
	merged = append(merged, pemeriksaan...)
	merged = append(merged, imunisasi...)
	merged = append(merged, vitamin...)
	sortAsc(merged)

	return &ChildSchedule{
		Jadwal: merged,
		Child:  child,
		Filter: FilterInfo{
			FilterApplied:    true,
			RecordsFound:     len(merged),
			PemeriksaanCount: len(pemeriksaan),
			ImunisasiCount:   len(imunisasi),
			VitaminCount:     len(vitamin),
		},
	}, nil
}

// UpcomingImunisasiForChild returns only the age-appropriate upcoming
// immunizations for one child.
func (s *Service) UpcomingImunisasiForChild(ctx context.Context, anakID int64) (*KindSchedule, error) {
	today := s.clock.Today()
	child, err := s.childInfoFor(ctx, anakID, today)
	if err != nil {
		return nil, err
	}

	var items []*Jadwal
	if names := imunisasiTypeNamesFor(child.AgeDays); len(names) > 0 {
		items, err = s.imunisasi.ListUpcomingByTypeNames(ctx, today, names)
		if err != nil {
			return nil, fmt.Errorf("list upcoming imunisasi: %w", err)
		}
	}
	sortAsc(items)

	return &KindSchedule{
		Jadwal: items,
		Child:  child,
		Filter: KindFilterInfo{FilterApplied: true, RecordsFound: len(items)},
	}, nil
}

// UpcomingVitaminForChild returns only the age-appropriate upcoming vitamin
// schedules for one child.
func (s *Service) UpcomingVitaminForChild(ctx context.Context, anakID int64) (*KindSchedule, error) {
	today := s.clock.Today()
	child, err := s.childInfoFor(ctx, anakID, today)
	if err != nil {
		return nil, err
	}

	var items []*Jadwal
	if names := vitaminTypeNamesFor(child.AgeMonths); len(names) > 0 {
		items, err = s.vitamin.ListUpcomingByTypeNames(ctx, today, names)
		if err != nil {
			return nil, fmt.Errorf("list upcoming vitamin: %w", err)
		}
	}
	sortAsc(items)

	return &KindSchedule{
		Jadwal: items,
		Child:  child,
		Filter: KindFilterInfo{FilterApplied: true, RecordsFound: len(items)},
	}, nil
}
