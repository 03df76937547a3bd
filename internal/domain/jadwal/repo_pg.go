package jadwal

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posyandu/posyandu/internal/platform/db"
	"github.com/posyandu/posyandu/pkg/dates"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

func scanJadwal(rows pgx.Rows) ([]*Jadwal, error) {
	defer rows.Close()
	var items []*Jadwal
	for rows.Next() {
		var j Jadwal
		if err := rows.Scan(&j.ID, &j.Judul, &j.Jenis, &j.Tanggal, &j.Waktu, &j.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// typeNameFilter builds an OR of substring matches on the catalog name
// column, numbering placeholders from startArg.
func typeNameFilter(column string, names []string, startArg int) (string, []interface{}) {
	conds := make([]string, 0, len(names))
	args := make([]interface{}, 0, len(names))
	for i, name := range names {
		conds = append(conds, fmt.Sprintf("%s LIKE '%%' || $%d || '%%'", column, startArg+i))
		args = append(args, name)
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

// =========== Pemeriksaan Repository ===========

type pemeriksaanRepoPG struct{ pool *pgxpool.Pool }

func NewPemeriksaanRepoPG(pool *pgxpool.Pool) PemeriksaanRepository {
	return &pemeriksaanRepoPG{pool: pool}
}

const pemeriksaanCols = `id, judul, 'pemeriksaan rutin' AS jenis, tanggal, waktu::text, created_at`

func (r *pemeriksaanRepoPG) ListAll(ctx context.Context) ([]*Jadwal, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+pemeriksaanCols+`
		FROM jadwal_pemeriksaan
		ORDER BY tanggal ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	return scanJadwal(rows)
}

func (r *pemeriksaanRepoPG) ListUpcoming(ctx context.Context, today dates.Date) ([]*Jadwal, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+pemeriksaanCols+`
		FROM jadwal_pemeriksaan
		WHERE tanggal >= $1
		ORDER BY tanggal ASC, created_at ASC`, today)
	if err != nil {
		return nil, err
	}
	return scanJadwal(rows)
}

// =========== Imunisasi Repository ===========

type imunisasiRepoPG struct{ pool *pgxpool.Pool }

func NewImunisasiRepoPG(pool *pgxpool.Pool) ImunisasiRepository {
	return &imunisasiRepoPG{pool: pool}
}

const imunisasiCols = `ji.id, jn.nama AS judul, 'imunisasi' AS jenis, ji.tanggal, ji.waktu::text, ji.created_at`

const imunisasiFrom = `FROM jadwal_imunisasi ji
		JOIN jenis_imunisasi jn ON ji.jenis_imunisasi_id = jn.id`

func (r *imunisasiRepoPG) ListAll(ctx context.Context) ([]*Jadwal, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+imunisasiCols+`
		`+imunisasiFrom+`
		ORDER BY ji.tanggal ASC, ji.created_at ASC`)
	if err != nil {
		return nil, err
	}
	return scanJadwal(rows)
}

func (r *imunisasiRepoPG) ListUpcoming(ctx context.Context, today dates.Date) ([]*Jadwal, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+imunisasiCols+`
		`+imunisasiFrom+`
		WHERE ji.tanggal >= $1
		ORDER BY ji.tanggal ASC, ji.created_at ASC`, today)
	if err != nil {
		return nil, err
	}
	return scanJadwal(rows)
}

func (r *imunisasiRepoPG) ListUpcomingByTypeNames(ctx context.Context, today dates.Date, names []string) ([]*Jadwal, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("imunisasi: type name list must not be empty")
	}
	filter, args := typeNameFilter("jn.nama", names, 2)
	query := `
		SELECT ` + imunisasiCols + `
		` + imunisasiFrom + `
		WHERE ji.tanggal >= $1 AND ` + filter + `
		ORDER BY ji.tanggal ASC, ji.created_at ASC`
	rows, err := conn(ctx, r.pool).Query(ctx, query, append([]interface{}{today}, args...)...)
	if err != nil {
		return nil, err
	}
	return scanJadwal(rows)
}

// =========== Vitamin Repository ===========

type vitaminRepoPG struct{ pool *pgxpool.Pool }

func NewVitaminRepoPG(pool *pgxpool.Pool) VitaminRepository {
	return &vitaminRepoPG{pool: pool}
}

const vitaminCols = `jv.id, jn.nama AS judul, 'vitamin' AS jenis, jv.tanggal, jv.waktu::text, jv.created_at`

const vitaminFrom = `FROM jadwal_vitamin jv
		JOIN jenis_vitamin jn ON jv.jenis_vitamin_id = jn.id`

func (r *vitaminRepoPG) ListAll(ctx context.Context) ([]*Jadwal, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+vitaminCols+`
		`+vitaminFrom+`
		ORDER BY jv.tanggal ASC, jv.created_at ASC`)
	if err != nil {
		return nil, err
	}
	return scanJadwal(rows)
}

func (r *vitaminRepoPG) ListUpcoming(ctx context.Context, today dates.Date) ([]*Jadwal, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+vitaminCols+`
		`+vitaminFrom+`
		WHERE jv.tanggal >= $1
		ORDER BY jv.tanggal ASC, jv.created_at ASC`, today)
	if err != nil {
		return nil, err
	}
	return scanJadwal(rows)
}

func (r *vitaminRepoPG) ListUpcomingByTypeNames(ctx context.Context, today dates.Date, names []string) ([]*Jadwal, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("vitamin: type name list must not be empty")
	}
	filter, args := typeNameFilter("jn.nama", names, 2)
	query := `
		SELECT ` + vitaminCols + `
		` + vitaminFrom + `
		WHERE jv.tanggal >= $1 AND ` + filter + `
		ORDER BY jv.tanggal ASC, jv.created_at ASC`
	rows, err := conn(ctx, r.pool).Query(ctx, query, append([]interface{}{today}, args...)...)
	if err != nil {
		return nil, err
	}
	return scanJadwal(rows)
}
