package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"hoteldesk/internal/adapters/observability"
	"hoteldesk/internal/domain"
)

// Gateway owns a single connection and prints query results to out.
// It is not safe for concurrent use; the console issues one statement at a time.
type Gateway struct {
	db      *sql.DB
	conn    *sql.Conn
	dialect Dialect
	out     io.Writer
}

var _ domain.Gateway = (*Gateway)(nil)

// Open connects and pins one connection for the lifetime of the Gateway.
// Any failure is a *domain.ConnectionError.
func Open(ctx context.Context, ci ConnInfo, out io.Writer) (*Gateway, error) {
	d, err := DialectFor(ci.Driver)
	if err != nil {
		return nil, &domain.ConnectionError{Driver: ci.Driver, Err: err}
	}
	dsn, err := DSN(ci)
	if err != nil {
		return nil, &domain.ConnectionError{Driver: d.Name, Err: err}
	}
	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, &domain.ConnectionError{Driver: d.Name, Err: err}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, &domain.ConnectionError{Driver: d.Name, Err: err}
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, &domain.ConnectionError{Driver: d.Name, Err: err}
	}
	log.Info().Str("driver", d.Name).Str("db", ci.Name).Msg("database connection ok")
	return &Gateway{db: db, conn: conn, dialect: d, out: out}, nil
}

// Close releases the connection. Errors are ignored and repeated calls are no-ops.
func (g *Gateway) Close() {
	if g == nil {
		return
	}
	if g.conn != nil {
		_ = g.conn.Close()
		g.conn = nil
	}
	if g.db != nil {
		_ = g.db.Close()
		g.db = nil
		log.Info().Str("driver", g.dialect.Name).Msg("database connection closed")
	}
}

func (g *Gateway) Dialect() Dialect { return g.dialect }

func (g *Gateway) Year(expr string) string { return g.dialect.Year(expr) }

func (g *Gateway) Execute(ctx context.Context, query string, args ...any) error {
	start := time.Now()
	_, err := g.conn.ExecContext(ctx, g.dialect.Rebind(query), args...)
	return g.done("execute", start, err)
}

func (g *Gateway) Query(ctx context.Context, query string, args ...any) (int, error) {
	return g.print(ctx, "query", query, 0, args)
}

// QueryLimit prints at most limit rows; limit <= 0 prints everything.
func (g *Gateway) QueryLimit(ctx context.Context, query string, limit int, args ...any) (int, error) {
	return g.print(ctx, "query", query, limit, args)
}

// Count returns how many rows the query yields, whatever the columns hold.
func (g *Gateway) Count(ctx context.Context, query string, args ...any) (int, error) {
	start := time.Now()
	rows, err := g.conn.QueryContext(ctx, g.dialect.Rebind(query), args...)
	if err != nil {
		return 0, g.done("count", start, err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, g.done("count", start, err)
	}
	return n, g.done("count", start, nil)
}

// Scalar returns the first column of the last row, or "" for no rows or NULL.
func (g *Gateway) Scalar(ctx context.Context, query string, args ...any) (string, error) {
	start := time.Now()
	rows, err := g.conn.QueryContext(ctx, g.dialect.Rebind(query), args...)
	if err != nil {
		return "", g.done("scalar", start, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", g.done("scalar", start, err)
	}
	vals, ptrs := scanTargets(len(cols))
	out := ""
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return "", g.done("scalar", start, err)
		}
		out = ""
		if len(vals) > 0 && vals[0] != nil {
			out = formatValue(vals[0])
		}
	}
	if err := rows.Err(); err != nil {
		return "", g.done("scalar", start, err)
	}
	return out, g.done("scalar", start, nil)
}

func (g *Gateway) print(ctx context.Context, op, query string, limit int, args []any) (int, error) {
	start := time.Now()
	rows, err := g.conn.QueryContext(ctx, g.dialect.Rebind(query), args...)
	if err != nil {
		return 0, g.done(op, start, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return 0, g.done(op, start, err)
	}
	vals, ptrs := scanTargets(len(cols))
	line := make([]string, len(cols))
	n := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return n, g.done(op, start, err)
		}
		if n == 0 {
			fmt.Fprintln(g.out, strings.Join(cols, "\t"))
		}
		for i, v := range vals {
			line[i] = formatValue(v)
		}
		fmt.Fprintln(g.out, strings.Join(line, "\t"))
		n++
		if limit > 0 && n == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return n, g.done(op, start, err)
	}
	return n, g.done(op, start, nil)
}

func (g *Gateway) done(op string, start time.Time, err error) error {
	observability.ObserveStatement(op, err, time.Since(start))
	if err != nil {
		log.Warn().Err(err).Str("op", op).Str("driver", g.dialect.Name).Msg("statement failed")
		return &domain.StatementError{Op: op, Err: err}
	}
	return nil
}

func scanTargets(n int) ([]any, []any) {
	vals := make([]any, n)
	ptrs := make([]any, n)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	return vals, ptrs
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	default:
		return fmt.Sprint(x)
	}
}
