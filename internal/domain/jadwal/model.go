package jadwal

import (
	"time"

	"github.com/posyandu/posyandu/pkg/dates"
)

// Jenis tags which schedule store an event came from.
type Jenis string

const (
	JenisPemeriksaan Jenis = "pemeriksaan rutin"
	JenisImunisasi   Jenis = "imunisasi"
	JenisVitamin     Jenis = "vitamin"
)

// Jadwal is the unified scheduled-event shape returned to clients. The three
// stores project into it at the query edge; ids are only unique within a
// jenis.
type Jadwal struct {
	ID        int64      `db:"id" json:"id"`
	Judul     string     `db:"judul" json:"judul"`
	Jenis     Jenis      `db:"jenis" json:"jenis"`
	Tanggal   dates.Date `db:"tanggal" json:"tanggal"`
	Waktu     *string    `db:"waktu" json:"waktu"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// ChildInfo accompanies age-filtered responses.
type ChildInfo struct {
	ID           int64      `json:"id"`
	Nama         string     `json:"nama"`
	TanggalLahir dates.Date `json:"tanggal_lahir"`
	AgeMonths    int        `json:"age_months"`
	AgeDays      int        `json:"age_days"`
}

// FilterInfo breaks down an age-filtered combined response by jenis.
type FilterInfo struct {
	FilterApplied    bool `json:"filter_applied"`
	RecordsFound     int  `json:"records_found"`
	PemeriksaanCount int  `json:"pemeriksaan_count"`
	ImunisasiCount   int  `json:"imunisasi_count"`
	VitaminCount     int  `json:"vitamin_count"`
}

// KindFilterInfo is the filter summary for single-jenis responses.
type KindFilterInfo struct {
	FilterApplied bool `json:"filter_applied"`
	RecordsFound  int  `json:"records_found"`
}

// ChildSchedule is the full result of an age-filtered combined query.
type ChildSchedule struct {
	Jadwal []*Jadwal
	Child  ChildInfo
	Filter FilterInfo
}

// KindSchedule is the result of an age-filtered single-jenis query.
type KindSchedule struct {
	Jadwal []*Jadwal
	Child  ChildInfo
	Filter KindFilterInfo
}
