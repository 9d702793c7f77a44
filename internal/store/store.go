// Package store 集中所有資料表的 SQL；函式接受 database.Querier，
// 在連線池與交易中的行為一致
package store

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrInvalid   = errors.New("violates a check constraint")
)

// psql 產生 Postgres 形式 ($1, $2, ...) 的語句
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// classify 將 driver 錯誤對應到套件的 sentinel，並保留原始錯誤
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case "23503":
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case "23514":
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return err
}

// ConstraintName 回傳違反的約束名稱，非約束錯誤時回傳 ""
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
