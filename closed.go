package scyllacdc

import (
	"context"

	"github.com/arloliu/scyllacdc/adapter/cql"
	"github.com/arloliu/scyllacdc/types"
)

// closedQuery is returned by a closed Session. Every execution fails with
// types.ErrSessionClosed.
type closedQuery struct {
	stmt   string
	values []any
}

var _ cql.Query = (*closedQuery)(nil)

func (q *closedQuery) Consistency(_ cql.Consistency) cql.Query { return q }
func (q *closedQuery) PageSize(_ int) cql.Query                { return q }
func (q *closedQuery) PageState(_ []byte) cql.Query            { return q }
func (q *closedQuery) Exec() error                             { return types.ErrSessionClosed }
func (q *closedQuery) ExecContext(_ context.Context) error     { return types.ErrSessionClosed }
func (q *closedQuery) Scan(_ ...any) error                     { return types.ErrSessionClosed }
func (q *closedQuery) Iter() cql.Iter                          { return closedIter{} }
func (q *closedQuery) IterContext(_ context.Context) cql.Iter  { return closedIter{} }
func (q *closedQuery) MapScan(_ map[string]any) error          { return types.ErrSessionClosed }
func (q *closedQuery) Statement() string                       { return q.stmt }
func (q *closedQuery) Values() []any                           { return q.values }
func (q *closedQuery) Release()                                {}

func (q *closedQuery) ScanContext(_ context.Context, _ ...any) error {
	return types.ErrSessionClosed
}

func (q *closedQuery) MapScanContext(_ context.Context, _ map[string]any) error {
	return types.ErrSessionClosed
}

// closedIter yields no rows and reports types.ErrSessionClosed on Close.
type closedIter struct{}

var _ cql.Iter = closedIter{}

func (closedIter) Scan(_ ...any) bool                  { return false }
func (closedIter) Close() error                        { return types.ErrSessionClosed }
func (closedIter) MapScan(_ map[string]any) bool       { return false }
func (closedIter) SliceMap() ([]map[string]any, error) { return nil, types.ErrSessionClosed }
func (closedIter) PageState() []byte                   { return nil }
func (closedIter) NumRows() int                        { return 0 }
func (closedIter) Columns() []cql.ColumnInfo           { return nil }
func (closedIter) Scanner() cql.Scanner                { return closedScanner{} }
func (closedIter) Warnings() []string                  { return nil }

type closedScanner struct{}

func (closedScanner) Next() bool          { return false }
func (closedScanner) Scan(_ ...any) error { return types.ErrSessionClosed }
func (closedScanner) Err() error          { return types.ErrSessionClosed }
