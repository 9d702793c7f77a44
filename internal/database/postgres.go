package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var pgxpoolNew = pgxpool.New

// pool 讓 *pgxpool.Pool 符合 DB；pgx.Tx 本身已符合 Tx
type pool struct {
	*pgxpool.Pool
}

func (p pool) Begin(ctx context.Context) (Tx, error) {
	return p.Pool.Begin(ctx)
}

func NewPgxPool(ctx context.Context, url string) (DB, error) {
	p, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, err
	}
	return pool{Pool: p}, nil
}
