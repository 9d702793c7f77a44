package store

import (
	"context"
	"fmt"

	"foodgram/internal/database"
	"foodgram/internal/model"
)

func ListTags(ctx context.Context, db database.Querier) ([]model.Tag, error) {
	rows, err := db.Query(ctx, `SELECT id, name, color, slug FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("ListTags: scan: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	return tags, nil
}

func GetTag(ctx context.Context, db database.Querier, id int) (*model.Tag, error) {
	t := &model.Tag{}
	err := db.QueryRow(ctx, `SELECT id, name, color, slug FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	if err != nil {
		return nil, fmt.Errorf("GetTag: %w", classify(err))
	}
	return t, nil
}

func CreateTag(ctx context.Context, db database.Querier, t *model.Tag) error {
	err := db.QueryRow(ctx,
		`INSERT INTO tags (name, color, slug) VALUES ($1, $2, $3) RETURNING id`,
		t.Name, t.Color, t.Slug,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("CreateTag: %w", classify(err))
	}
	return nil
}

// MissingTagIDs 回傳 ids 中不存在的標籤 ID
func MissingTagIDs(ctx context.Context, db database.Querier, ids []int) ([]int, error) {
	missing, err := missingIDs(ctx, db, "tags", ids)
	if err != nil {
		return nil, fmt.Errorf("MissingTagIDs: %w", err)
	}
	return missing, nil
}

func missingIDs(ctx context.Context, db database.Querier, table string, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := psql.Select("id").From(table).Where("id = ANY(?)", ids).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[int]bool, len(ids))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []int
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
