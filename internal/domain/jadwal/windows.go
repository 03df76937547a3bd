package jadwal

import "fmt"

// AgeWindow declares the [Min, Max] age range during which a scheduled event
// of a given type is relevant. Units are days for immunizations and months
// for vitamins. Schedule titles embed the type name, so matching is by
// substring; see the repository layer.
//
// The tables are the national posyandu guidance and are fixed in process so
// the medical policy stays in one reviewable place.
type AgeWindow struct {
	TypeName string
	Min      int
	Max      int
}

var imunisasiWindows = []AgeWindow{
	{"HB-0", 0, 7},
	{"BCG", 0, 30},
	{"Polio 1", 0, 30},
	{"DPT-HB-HIP 1", 0, 60},
	{"Polio 2", 0, 60},
	{"DPT-HB-HIP 2", 0, 90},
	{"Polio 3", 0, 90},
	{"DPT-HB-HIP 3", 0, 120},
	{"Polio 4", 0, 120},
	{"Campak", 0, 270},
}

var vitaminWindows = []AgeWindow{
	{"A Biru", 6, 11},
	{"A Merah", 12, 59},
}

// imunisasiTypeNamesFor returns the immunization type names whose day window
// contains the given age. Empty means no immunization is age-appropriate.
func imunisasiTypeNamesFor(ageDays int) []string {
	var names []string
	for _, w := range imunisasiWindows {
		if ageDays >= w.Min && ageDays <= w.Max {
			names = append(names, w.TypeName)
		}
	}
	return names
}

// vitaminTypeNamesFor returns the vitamin type names whose month window
// contains the given age.
func vitaminTypeNamesFor(ageMonths int) []string {
	var names []string
	for _, w := range vitaminWindows {
		if ageMonths >= w.Min && ageMonths <= w.Max {
			names = append(names, w.TypeName)
		}
	}
	return names
}

// ImunisasiAgeRange is the reference-data shape for the immunization window
// table, with the original human-readable Indonesian descriptions.
type ImunisasiAgeRange struct {
	Nama         string `json:"nama"`
	UsiaMinHari  int    `json:"usia_min_hari"`
	UsiaMaxHari  int    `json:"usia_max_hari"`
	UsiaMinText  string `json:"usia_min_text"`
	UsiaMaxText  string `json:"usia_max_text"`
	Deskripsi    string `json:"deskripsi"`
}

// VitaminAgeRange is the reference-data shape for the vitamin window table.
type VitaminAgeRange struct {
	Nama         string `json:"nama"`
	UsiaMinBulan int    `json:"usia_min_bulan"`
	UsiaMaxBulan int    `json:"usia_max_bulan"`
	Deskripsi    string `json:"deskripsi"`
}

// ImunisasiAgeRanges renders the immunization window table for the reference
// endpoint.
func ImunisasiAgeRanges() []ImunisasiAgeRange {
	ranges := make([]ImunisasiAgeRange, 0, len(imunisasiWindows))
	for _, w := range imunisasiWindows {
		minText := ageDaysText(w.Min)
		maxText := ageDaysText(w.Max)
		ranges = append(ranges, ImunisasiAgeRange{
			Nama:        w.TypeName,
			UsiaMinHari: w.Min,
			UsiaMaxHari: w.Max,
			UsiaMinText: minText,
			UsiaMaxText: maxText,
			Deskripsi:   fmt.Sprintf("Untuk anak usia %s sampai %s", minText, maxText),
		})
	}
	return ranges
}

// VitaminAgeRanges renders the vitamin window table for the reference
// endpoint.
func VitaminAgeRanges() []VitaminAgeRange {
	ranges := make([]VitaminAgeRange, 0, len(vitaminWindows))
	for _, w := range vitaminWindows {
		ranges = append(ranges, VitaminAgeRange{
			Nama:         w.TypeName,
			UsiaMinBulan: w.Min,
			UsiaMaxBulan: w.Max,
			Deskripsi:    fmt.Sprintf("Untuk anak usia %d-%d bulan", w.Min, w.Max),
		})
	}
	return ranges
}

// ageDaysText formats a day count as "N bulan M hari" using the same 30-day
// month approximation the filter uses.
func ageDaysText(days int) string {
	months := days / 30
	rem := days % 30

	text := ""
	if months > 0 {
		text = fmt.Sprintf("%d bulan ", months)
	}
	if rem > 0 {
		text += fmt.Sprintf("%d hari", rem)
	}
	if text == "" {
		text = "0 hari"
	}
	return text
}
