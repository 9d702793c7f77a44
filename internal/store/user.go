package store

import (
	"context"
	"fmt"

	"foodgram/internal/database"
	"foodgram/internal/model"

	sq "github.com/Masterminds/squirrel"
)

const userColumns = `id, email, username, first_name, last_name, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.CreatedAt,
	)
}

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	row := db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", classify(err))
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	row := db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", classify(err))
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, username, first_name, last_name, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Email,
		u.Username,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", classify(err))
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, db database.Querier, userID int, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", ErrNotFound)
	}
	return nil
}

// authorQuery 選取公開的使用者欄位以及 viewerID 是否追蹤
func authorQuery(viewerID int) sq.SelectBuilder {
	return psql.Select("u.id", "u.email", "u.username", "u.first_name", "u.last_name").
		Column(sq.Expr("EXISTS (SELECT 1 FROM follows f WHERE f.user_id = ? AND f.following_id = u.id)", viewerID)).
		From("users u")
}

func scanAuthor(row interface{ Scan(...any) error }, a *model.Author) error {
	return row.Scan(
		&a.ID,
		&a.Email,
		&a.Username,
		&a.FirstName,
		&a.LastName,
		&a.IsSubscribed,
	)
}

// GetAuthor 回傳使用者，並依 viewerID 計算 is_subscribed
func GetAuthor(ctx context.Context, db database.Querier, viewerID, userID int) (*model.Author, error) {
	query, args, err := authorQuery(viewerID).Where(sq.Eq{"u.id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("GetAuthor: %w", err)
	}
	a := &model.Author{}
	if err := scanAuthor(db.QueryRow(ctx, query, args...), a); err != nil {
		return nil, fmt.Errorf("GetAuthor: %w", classify(err))
	}
	return a, nil
}

// ListUsers 依 ID 排序回傳一頁使用者及總數
func ListUsers(ctx context.Context, db database.Querier, viewerID, limit, offset int) ([]model.Author, int, error) {
	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListUsers: count: %w", err)
	}

	query, args, err := authorQuery(viewerID).
		OrderBy("u.id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("ListUsers: scan: %w", err)
		}
		users = append(users, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	return users, total, nil
}
