package sqldb

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Dialect covers the few places where the supported engines disagree:
// placeholder syntax and extracting the year from a DATE.
type Dialect struct {
	Name       string
	driverName string
	numbered   bool // $1, $2 ... instead of ?
	yearFmt    string
}

var (
	Postgres = Dialect{Name: "postgres", driverName: "postgres", numbered: true, yearFmt: "EXTRACT(YEAR FROM %s)"}
	MySQL    = Dialect{Name: "mysql", driverName: "mysql", yearFmt: "EXTRACT(YEAR FROM %s)"}
	SQLite   = Dialect{Name: "sqlite", driverName: "sqlite", yearFmt: "CAST(strftime('%%Y', %s) AS INTEGER)"}
)

func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql", "pg", "":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported driver %q (want postgres|mysql|sqlite)", name)
}

func (d Dialect) Year(expr string) string { return fmt.Sprintf(d.yearFmt, expr) }

// Rebind rewrites ? placeholders for drivers that number them. Question
// marks inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if !d.numbered || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ConnInfo is what the command line and environment give us. For sqlite,
// Name is a file path (or ":memory:") and the network fields are ignored.
type ConnInfo struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

func DSN(ci ConnInfo) (string, error) {
	d, err := DialectFor(ci.Driver)
	if err != nil {
		return "", err
	}
	if ci.Name == "" {
		return "", fmt.Errorf("database name is required")
	}
	host := ci.Host
	if host == "" {
		host = "localhost"
	}
	switch d.Name {
	case "postgres":
		parts := []string{"host=" + pqQuote(host)}
		if ci.Port != "" {
			parts = append(parts, "port="+pqQuote(ci.Port))
		}
		parts = append(parts, "dbname="+pqQuote(ci.Name), "user="+pqQuote(ci.User), "sslmode=disable")
		if ci.Password != "" {
			parts = append(parts, "password="+pqQuote(ci.Password))
		}
		return strings.Join(parts, " "), nil
	case "mysql":
		cfg := mysql.NewConfig()
		cfg.User = ci.User
		cfg.Passwd = ci.Password
		cfg.Net = "tcp"
		port := ci.Port
		if port == "" {
			port = "3306"
		}
		cfg.Addr = net.JoinHostPort(host, port)
		cfg.DBName = ci.Name
		// DATE columns come back as YYYY-MM-DD text.
		cfg.ParseTime = false
		return cfg.FormatDSN(), nil
	default:
		return ci.Name, nil
	}
}

// pqQuote quotes a key/value connection-string value for lib/pq.
func pqQuote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
