package database

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakeRow 以固定的值實作 pgx.Row
type FakeRow struct {
	Values []any
	Err    error
}

func (r *FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(r.Values, dest)
}

// FakeRows 以記憶體資料實作 pgx.Rows，每列一個 []any
type FakeRows struct {
	Data    [][]any
	ScanErr error
	ErrVal  error

	idx    int
	closed bool
}

func (r *FakeRows) Close()                                       { r.closed = true }
func (r *FakeRows) Err() error                                   { return r.ErrVal }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) Next() bool                                   { return !r.closed && r.idx < len(r.Data) }
func (r *FakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *FakeRows) RawValues() [][]byte                          { return nil }
func (r *FakeRows) Conn() *pgx.Conn                              { return nil }

func (r *FakeRows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	row := r.Data[r.idx]
	r.idx++
	return assign(row, dest)
}

func assign(values, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("fake scan: %d values for %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *int:
			*d = v.(int)
		case *int64:
			*d = v.(int64)
		case *string:
			*d = v.(string)
		case *bool:
			*d = v.(bool)
		case *time.Time:
			*d = v.(time.Time)
		case *[]int:
			*d = v.([]int)
		default:
			return fmt.Errorf("fake scan: unsupported destination %T", dest[i])
		}
	}
	return nil
}
