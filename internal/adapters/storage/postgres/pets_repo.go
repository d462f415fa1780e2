package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"petpals/internal/domain/pets"
)

// PetsRepo guarda el documento completo en doc (JSONB); las columnas sueltas
// son solo las que se consultan por igualdad.
type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pet: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (id, owner_id, finder_id, status, doc, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		p.ID,
		p.OwnerID,
		nullString(p.FinderID),
		string(p.Status),
		doc,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pet: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			owner_id = $2,
			finder_id = $3,
			status = $4,
			doc = $5,
			updated_at = $6
		WHERE id = $1
	`,
		p.ID,
		p.OwnerID,
		nullString(p.FinderID),
		string(p.Status),
		doc,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM pets WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return decodePet(raw)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}
	return r.query(ctx, `SELECT doc FROM pets WHERE owner_id = $1 ORDER BY created_at ASC`, ownerID)
}

func (r *PetsRepo) ListByStatus(ctx context.Context, status pets.Status) ([]pets.Pet, error) {
	return r.query(ctx, `SELECT doc FROM pets WHERE status = $1 ORDER BY created_at DESC`, string(status))
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		p, err := decodePet(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func decodePet(raw []byte) (pets.Pet, error) {
	var p pets.Pet
	if err := json.Unmarshal(raw, &p); err != nil {
		return pets.Pet{}, fmt.Errorf("decode pet: %w", err)
	}
	return p, nil
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
