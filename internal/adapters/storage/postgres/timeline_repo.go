package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"petpals/internal/adapters/storage/codec"
	"petpals/internal/domain/timeline"
)

type TimelineRepo struct {
	db *sql.DB
}

func NewTimelineRepo(db *sql.DB) *TimelineRepo {
	return &TimelineRepo{db: db}
}

func (r *TimelineRepo) Create(ctx context.Context, e timeline.Entry) error {
	doc, err := json.Marshal(codec.FromEntry(e))
	if err != nil {
		return fmt.Errorf("encode timeline entry: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pet_timeline (id, pet_id, to_status, doc, occurred_at)
		VALUES ($1,$2,$3,$4,$5)
	`, e.ID, e.PetID, string(e.To), doc, e.OccurredAt)
	return err
}

func (r *TimelineRepo) ListByPet(ctx context.Context, petID string, filter timeline.ListFilter) ([]timeline.Entry, error) {
	var (
		where = []string{"pet_id = $1"}
		args  = []any{petID}
	)

	if len(filter.To) > 0 {
		placeholders := make([]string, 0, len(filter.To))
		for _, st := range filter.To {
			args = append(args, string(st))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		where = append(where, "to_status IN ("+strings.Join(placeholders, ",")+")")
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("occurred_at >= $%d", len(args)))
	}
	if filter.Until != nil {
		args = append(args, *filter.Until)
		where = append(where, fmt.Sprintf("occurred_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	q := fmt.Sprintf(`SELECT doc FROM pet_timeline WHERE %s ORDER BY occurred_at ASC LIMIT $%d`,
		strings.Join(where, " AND "), len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]timeline.Entry, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var d codec.EntryDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode timeline entry: %w", err)
		}
		out = append(out, d.Entry())
	}
	return out, rows.Err()
}
