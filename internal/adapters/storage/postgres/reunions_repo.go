package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"petpals/internal/adapters/storage/codec"
	"petpals/internal/domain/reunions"
)

type ReunionsRepo struct {
	db *sql.DB
}

func NewReunionsRepo(db *sql.DB) *ReunionsRepo {
	return &ReunionsRepo{db: db}
}

func (r *ReunionsRepo) Create(ctx context.Context, req reunions.Request) error {
	doc, err := json.Marshal(codec.FromRequest(req))
	if err != nil {
		return fmt.Errorf("encode reunion request: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reunited_requests (id, pet_id, original_owner_id, finder_id, status, doc, requested_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		req.ID,
		req.PetID,
		req.OriginalOwnerID,
		req.FinderID,
		string(req.Status),
		doc,
		req.RequestedAt,
		req.UpdatedAt,
	)
	return err
}

func (r *ReunionsRepo) Update(ctx context.Context, req reunions.Request) error {
	doc, err := json.Marshal(codec.FromRequest(req))
	if err != nil {
		return fmt.Errorf("encode reunion request: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE reunited_requests
		SET status = $2, doc = $3, updated_at = $4
		WHERE id = $1
	`,
		req.ID,
		string(req.Status),
		doc,
		req.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reunions.ErrNotFound
	}
	return nil
}

func (r *ReunionsRepo) GetByID(ctx context.Context, id string) (reunions.Request, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM reunited_requests WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reunions.Request{}, reunions.ErrNotFound
		}
		return reunions.Request{}, err
	}
	return decodeRequest(raw)
}

func (r *ReunionsRepo) ListByPet(ctx context.Context, petID string) ([]reunions.Request, error) {
	return r.query(ctx, `SELECT doc FROM reunited_requests WHERE pet_id = $1 ORDER BY requested_at ASC`, petID)
}

func (r *ReunionsRepo) ListByOwner(ctx context.Context, ownerID string) ([]reunions.Request, error) {
	return r.query(ctx, `SELECT doc FROM reunited_requests WHERE original_owner_id = $1 ORDER BY requested_at ASC`, ownerID)
}

func (r *ReunionsRepo) ListByFinder(ctx context.Context, finderID string) ([]reunions.Request, error) {
	return r.query(ctx, `SELECT doc FROM reunited_requests WHERE finder_id = $1 ORDER BY requested_at ASC`, finderID)
}

func (r *ReunionsRepo) query(ctx context.Context, q string, args ...any) ([]reunions.Request, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reunions.Request, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		req, err := decodeRequest(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func decodeRequest(raw []byte) (reunions.Request, error) {
	var d codec.RequestDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return reunions.Request{}, fmt.Errorf("decode reunion request: %w", err)
	}
	return d.Request(), nil
}
