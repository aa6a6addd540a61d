package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shelvd/internal/catalog"
)

// PostgresRepo stores collections in Postgres. Member titles live in a
// separate table keyed by position so order survives round trips.
type PostgresRepo struct {
	db *pgxpool.Pool
}

// NewPostgresRepo creates a repository over the given pool.
func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Get(ctx context.Context, key string) (Record, error) {
	const recordSQL = `
		SELECT key, name, source, list_type, COALESCE(owner_key, ''), created_at, updated_at
		FROM collections
		WHERE key = $1
	`
	var rec Record
	err := r.db.QueryRow(ctx, recordSQL, key).Scan(
		&rec.Key, &rec.Name, &rec.Source, &rec.Type, &rec.OwnerKey, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get collection: %w", err)
	}

	titles, err := r.titles(ctx, key)
	if err != nil {
		return Record{}, err
	}
	rec.Titles = titles
	return rec, nil
}

func (r *PostgresRepo) titles(ctx context.Context, key string) ([]string, error) {
	const titlesSQL = `
		SELECT title
		FROM collection_books
		WHERE collection_key = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, titlesSQL, key)
	if err != nil {
		return nil, fmt.Errorf("get collection titles: %w", err)
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

func (r *PostgresRepo) ListForOwner(ctx context.Context, ownerKey string) ([]Record, error) {
	const listSQL = `
		SELECT key, name, source, list_type, COALESCE(owner_key, ''), created_at, updated_at
		FROM collections
		WHERE list_type = $1 OR owner_key = $2
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, listSQL, catalog.ListTypeCore, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.Key, &rec.Name, &rec.Source, &rec.Type, &rec.OwnerKey, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, rec Record) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const insertSQL = `
			INSERT INTO collections (key, name, source, list_type, owner_key, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		`
		if _, err := tx.Exec(ctx, insertSQL,
			rec.Key, rec.Name, rec.Source, rec.Type, rec.OwnerKey, rec.CreatedAt, rec.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert collection: %w", err)
		}
		return insertTitles(ctx, tx, rec.Key, rec.Titles)
	})
}

func (r *PostgresRepo) Update(ctx context.Context, rec Record) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const updateSQL = `
			UPDATE collections
			SET name = $2, updated_at = $3
			WHERE key = $1
		`
		tag, err := tx.Exec(ctx, updateSQL, rec.Key, rec.Name, rec.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update collection: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM collection_books WHERE collection_key = $1`, rec.Key); err != nil {
			return fmt.Errorf("clear collection titles: %w", err)
		}
		return insertTitles(ctx, tx, rec.Key, rec.Titles)
	})
}

func (r *PostgresRepo) Delete(ctx context.Context, key string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM collections WHERE key = $1`, key)
	if err != nil {
		return false, fmt.Errorf("delete collection: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func insertTitles(ctx context.Context, tx pgx.Tx, key string, titles []string) error {
	const insertSQL = `
		INSERT INTO collection_books (collection_key, position, title)
		VALUES ($1, $2, $3)
	`
	for i, title := range titles {
		if _, err := tx.Exec(ctx, insertSQL, key, i, title); err != nil {
			return fmt.Errorf("insert collection title: %w", err)
		}
	}
	return nil
}
