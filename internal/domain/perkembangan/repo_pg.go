package perkembangan

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posyandu/posyandu/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cols = `id, anak_id, tanggal, berat_badan, tinggi_badan,
	updated_from_id, is_updated, updated_by_id, created_at, updated_at, deleted_at`

func scanRow(row pgx.Row) (*Perkembangan, error) {
	var p Perkembangan
	err := row.Scan(&p.ID, &p.AnakID, &p.Tanggal, &p.BeratBadan, &p.TinggiBadan,
		&p.UpdatedFromID, &p.IsUpdated, &p.UpdatedByID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) ListByAnak(ctx context.Context, anakID int64) ([]*Perkembangan, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+cols+`
		FROM perkembangan_anak
		WHERE anak_id = $1 AND deleted_at IS NULL
		ORDER BY tanggal ASC, id ASC`, anakID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Perkembangan
	for rows.Next() {
		var p Perkembangan
		if err := rows.Scan(&p.ID, &p.AnakID, &p.Tanggal, &p.BeratBadan, &p.TinggiBadan,
			&p.UpdatedFromID, &p.IsUpdated, &p.UpdatedByID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Perkembangan, error) {
	row := r.conn(ctx).QueryRow(ctx, `
		SELECT `+cols+`
		FROM perkembangan_anak
		WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanRow(row)
}

func (r *repoPG) Create(ctx context.Context, rec WriteRecord) (*Perkembangan, error) {
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO perkembangan_anak (anak_id, tanggal, berat_badan, tinggi_badan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING `+cols,
		rec.AnakID, rec.Tanggal, rec.BeratBadan, rec.TinggiBadan)
	return scanRow(row)
}

// Revise runs in its own transaction: the predecessor is re-read under a row
// lock so two racing revisions serialize, and the loser sees is_updated
// already flipped and gets ErrConflict.
func (r *repoPG) Revise(ctx context.Context, id int64, rec WriteRecord) (*Perkembangan, *Perkembangan, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin revise: %w", err)
	}
	defer tx.Rollback(ctx)

	old, err := scanRow(tx.QueryRow(ctx, `
		SELECT `+cols+`
		FROM perkembangan_anak
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`, id))
	if err != nil {
		return nil, nil, err
	}
	if old.IsUpdated {
		return nil, nil, ErrConflict
	}

	newRec, err := scanRow(tx.QueryRow(ctx, `
		INSERT INTO perkembangan_anak (anak_id, tanggal, berat_badan, tinggi_badan, updated_from_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING `+cols,
		rec.AnakID, rec.Tanggal, rec.BeratBadan, rec.TinggiBadan, old.ID))
	if err != nil {
		return nil, nil, fmt.Errorf("insert successor: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE perkembangan_anak
		SET is_updated = true, updated_by_id = $2, updated_at = now()
		WHERE id = $1`, old.ID, newRec.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("mark predecessor: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return nil, nil, fmt.Errorf("mark predecessor: %d rows affected", tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit revise: %w", err)
	}

	old.IsUpdated = true
	old.UpdatedByID = &newRec.ID
	return newRec, old, nil
}

func (r *repoPG) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE perkembangan_anak
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
