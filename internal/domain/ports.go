package domain

import "context"

// Gateway is the only way the console talks to the database. Every method
// takes SQL text with `?` placeholders plus bound arguments.
type Gateway interface {
	// Side effect only (INSERT/UPDATE/DELETE/DDL).
	Execute(ctx context.Context, query string, args ...any) error

	// Print a header and tab-separated rows, return the row count.
	Query(ctx context.Context, query string, args ...any) (int, error)
	QueryLimit(ctx context.Context, query string, limit int, args ...any) (int, error)

	// Lookups; nothing is printed.
	Count(ctx context.Context, query string, args ...any) (int, error)
	Scalar(ctx context.Context, query string, args ...any) (string, error)

	// Year returns the dialect's expression for the calendar year of expr.
	Year(expr string) string
}
