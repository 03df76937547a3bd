package jadwal

import (
	"context"

	"github.com/posyandu/posyandu/pkg/dates"
)

// PemeriksaanRepository reads the routine-checkup schedule store.
type PemeriksaanRepository interface {
	ListAll(ctx context.Context) ([]*Jadwal, error)
	ListUpcoming(ctx context.Context, today dates.Date) ([]*Jadwal, error)
}

// ImunisasiRepository reads the immunization schedule store joined to its
// type catalog. ListUpcomingByTypeNames pushes the substring match on type
// names into SQL; callers must not pass an empty name list.
type ImunisasiRepository interface {
	ListAll(ctx context.Context) ([]*Jadwal, error)
	ListUpcoming(ctx context.Context, today dates.Date) ([]*Jadwal, error)
	ListUpcomingByTypeNames(ctx context.Context, today dates.Date, names []string) ([]*Jadwal, error)
}

// VitaminRepository reads the vitamin schedule store joined to its type
// catalog.
type VitaminRepository interface {
	ListAll(ctx context.Context) ([]*Jadwal, error)
	ListUpcoming(ctx context.Context, today dates.Date) ([]*Jadwal, error)
	ListUpcomingByTypeNames(ctx context.Context, today dates.Date, names []string) ([]*Jadwal, error)
}
