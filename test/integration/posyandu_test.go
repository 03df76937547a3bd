package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/posyandu/posyandu/internal/domain/anak"
	"github.com/posyandu/posyandu/internal/domain/jadwal"
	"github.com/posyandu/posyandu/internal/domain/perkembangan"
	"github.com/posyandu/posyandu/internal/platform/db"
	"github.com/posyandu/posyandu/pkg/dates"
)

func seedChild(t *testing.T, ctx context.Context, nama string, tanggalLahir dates.Date) int64 {
	t.Helper()
	var id int64
	err := globalDB.Pool.QueryRow(ctx,
		`INSERT INTO anak (nama, tanggal_lahir) VALUES ($1, $2) RETURNING id`,
		nama, tanggalLahir).Scan(&id)
	if err != nil {
		t.Fatalf("seed anak: %v", err)
	}
	return id
}

func seedJenisImunisasi(t *testing.T, ctx context.Context, nama string) int64 {
	t.Helper()
	var id int64
	err := globalDB.Pool.QueryRow(ctx,
		`INSERT INTO jenis_imunisasi (nama) VALUES ($1) RETURNING id`, nama).Scan(&id)
	if err != nil {
		t.Fatalf("seed jenis_imunisasi: %v", err)
	}
	return id
}

func seedJadwalImunisasi(t *testing.T, ctx context.Context, jenisID int64, tanggal dates.Date, waktu *string) {
	t.Helper()
	_, err := globalDB.Pool.Exec(ctx,
		`INSERT INTO jadwal_imunisasi (jenis_imunisasi_id, tanggal, waktu) VALUES ($1, $2, $3)`,
		jenisID, tanggal, waktu)
	if err != nil {
		t.Fatalf("seed jadwal_imunisasi: %v", err)
	}
}

func TestAnakRepoResolve(t *testing.T) {
	ctx := context.Background()
	truncateAll(t, ctx)

	id := seedChild(t, ctx, "Budi", dates.New(2024, time.January, 1))
	repo := anak.NewRepoPG(globalDB.Pool)

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Nama != "Budi" || got.TanggalLahir.String() != "2024-01-01" {
		t.Errorf("got %+v", got)
	}

	if _, err := repo.GetByID(ctx, id+1); !errors.Is(err, anak.ErrNotFound) {
		t.Errorf("missing child err = %v, want ErrNotFound", err)
	}
}

func TestImunisasiRepoTypeNameFilter(t *testing.T) {
	ctx := context.Background()
	truncateAll(t, ctx)

	// Titles embed the window key, sometimes with a prefix.
	hb0 := seedJenisImunisasi(t, ctx, "Imunisasi HB-0")
	bcg := seedJenisImunisasi(t, ctx, "BCG")
	campak := seedJenisImunisasi(t, ctx, "Campak")

	today := dates.New(2024, time.June, 1)
	waktu := "09:30:00"
	seedJadwalImunisasi(t, ctx, hb0, dates.New(2024, time.June, 3), &waktu)
	seedJadwalImunisasi(t, ctx, bcg, dates.New(2024, time.June, 2), nil)
	seedJadwalImunisasi(t, ctx, campak, dates.New(2024, time.May, 1), nil) // past, excluded

	repo := jadwal.NewImunisasiRepoPG(globalDB.Pool)

	items, err := repo.ListUpcomingByTypeNames(ctx, today, []string{"HB-0", "BCG", "Campak"})
	if err != nil {
		t.Fatalf("ListUpcomingByTypeNames: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 upcoming", len(items))
	}
	// Ascending by tanggal.
	if items[0].Judul != "BCG" || items[1].Judul != "Imunisasi HB-0" {
		t.Errorf("order = %q, %q", items[0].Judul, items[1].Judul)
	}
	if items[0].Jenis != jadwal.JenisImunisasi {
		t.Errorf("jenis = %q", items[0].Jenis)
	}
	if items[0].Waktu != nil {
		t.Errorf("BCG waktu = %v, want null", *items[0].Waktu)
	}
	if items[1].Waktu == nil || *items[1].Waktu != "09:30:00" {
		t.Errorf("HB-0 waktu = %v, want 09:30:00", items[1].Waktu)
	}

	// Substring match only: a name list without these keys returns nothing.
	items, err = repo.ListUpcomingByTypeNames(ctx, today, []string{"Polio 1"})
	if err != nil {
		t.Fatalf("ListUpcomingByTypeNames: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}

func TestPerkembanganChainRoundTrip(t *testing.T) {
	ctx := context.Background()
	truncateAll(t, ctx)

	anakID := seedChild(t, ctx, "Siti", dates.New(2024, time.June, 1))
	repo := perkembangan.NewRepoPG(globalDB.Pool)

	berat, _ := perkembangan.DecimalFromString("5.20")
	tinggi, _ := perkembangan.DecimalFromString("58.00")
	g1, err := repo.Create(ctx, perkembangan.WriteRecord{
		AnakID:      anakID,
		Tanggal:     dates.New(2025, time.January, 10),
		BeratBadan:  berat,
		TinggiBadan: tinggi,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	berat2, _ := perkembangan.DecimalFromString("5.30")
	g2, old, err := repo.Revise(ctx, g1.ID, perkembangan.WriteRecord{
		AnakID:      anakID,
		Tanggal:     dates.New(2025, time.January, 10),
		BeratBadan:  berat2,
		TinggiBadan: tinggi,
	})
	if err != nil {
		t.Fatalf("Revise: %v", err)
	}
	if g2.UpdatedFromID == nil || *g2.UpdatedFromID != g1.ID {
		t.Errorf("successor chain link = %v", g2.UpdatedFromID)
	}
	if !old.IsUpdated || old.UpdatedByID == nil || *old.UpdatedByID != g2.ID {
		t.Errorf("predecessor not superseded: %+v", old)
	}
	if old.BeratBadan.StringFixed(2) != "5.20" {
		t.Errorf("predecessor payload changed: %s", old.BeratBadan.StringFixed(2))
	}

	items, err := repo.ListByAnak(ctx, anakID)
	if err != nil {
		t.Fatalf("ListByAnak: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d rows, want both rows of the chain", len(items))
	}

	// Soft delete keeps the chain reachable in the table.
	if err := repo.SoftDelete(ctx, g2.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	items, _ = repo.ListByAnak(ctx, anakID)
	if len(items) != 1 {
		t.Errorf("got %d rows after delete, want 1", len(items))
	}
	var updatedFrom *int64
	err = globalDB.Pool.QueryRow(ctx,
		`SELECT updated_from_id FROM perkembangan_anak WHERE id = $1`, g2.ID).Scan(&updatedFrom)
	if err != nil || updatedFrom == nil || *updatedFrom != g1.ID {
		t.Errorf("chain link after delete = %v (err %v), want %d", updatedFrom, err, g1.ID)
	}
}

func TestRepoJoinsAmbientTransaction(t *testing.T) {
	ctx := context.Background()
	truncateAll(t, ctx)

	anakID := seedChild(t, ctx, "Dewi", dates.New(2024, time.June, 1))
	repo := perkembangan.NewRepoPG(globalDB.Pool)

	txCtx, tx, err := db.WithTx(ctx, globalDB.Pool)
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	berat, _ := perkembangan.DecimalFromString("7.00")
	tinggi, _ := perkembangan.DecimalFromString("65.00")
	created, err := repo.Create(txCtx, perkembangan.WriteRecord{
		AnakID:      anakID,
		Tanggal:     dates.New(2025, time.March, 1),
		BeratBadan:  berat,
		TinggiBadan: tinggi,
	})
	if err != nil {
		t.Fatalf("Create in tx: %v", err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, perkembangan.ErrNotFound) {
		t.Fatalf("row visible after rollback: err = %v", err)
	}
}

func TestPerkembanganConcurrentReviseConflicts(t *testing.T) {
	ctx := context.Background()
	truncateAll(t, ctx)

	anakID := seedChild(t, ctx, "Andi", dates.New(2024, time.June, 1))
	repo := perkembangan.NewRepoPG(globalDB.Pool)

	berat, _ := perkembangan.DecimalFromString("6.00")
	tinggi, _ := perkembangan.DecimalFromString("60.00")
	rec := perkembangan.WriteRecord{
		AnakID:      anakID,
		Tanggal:     dates.New(2025, time.February, 1),
		BeratBadan:  berat,
		TinggiBadan: tinggi,
	}
	g1, err := repo.Create(ctx, rec)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const racers = 2
	errs := make([]error, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = repo.Revise(ctx, g1.ID, rec)
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, perkembangan.ErrConflict):
			conflict++
		default:
			t.Fatalf("unexpected revise error: %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Fatalf("got %d successes and %d conflicts, want exactly one of each", ok, conflict)
	}
}
