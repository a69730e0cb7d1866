package sqlstore

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-authgate/userstore/sqltemplate"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"           // postgres
	_ "github.com/mattn/go-sqlite3" // sqlite3
)

// Driver describes how to reach one database engine: the database/sql
// driver name, the bind-marker dialect for templated queries, and how
// to merge the configured URL and credentials into a DSN.
type Driver struct {
	Name string
	Bind sqltemplate.Binder
	DSN  func(u *url.URL, username, password string) (string, error)
}

// drivers maps URL schemes to their drivers.
var drivers = map[string]*Driver{
	"postgres":   {Name: "postgres", Bind: sqltemplate.Dollar, DSN: postgresDSN},
	"postgresql": {Name: "postgres", Bind: sqltemplate.Dollar, DSN: postgresDSN},
	"mysql":      {Name: "mysql", Bind: sqltemplate.Question, DSN: mysqlDSN},
	"sqlite":     {Name: "sqlite3", Bind: sqltemplate.Question, DSN: sqliteDSN},
	"sqlite3":    {Name: "sqlite3", Bind: sqltemplate.Question, DSN: sqliteDSN},
	"file":       {Name: "sqlite3", Bind: sqltemplate.Question, DSN: sqliteDSN},
}

// RegisterDriver allows registering custom database drivers under a
// URL scheme. The driver name must already be registered with
// database/sql by the caller.
func RegisterDriver(scheme string, driver *Driver) {
	drivers[scheme] = driver
}

// ResolveDriver picks the driver for a connection URL and builds the
// DSN carrying the configured credentials.
func ResolveDriver(rawURL, username, password string) (*Driver, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedDriver, err)
	}

	driver, exists := drivers[u.Scheme]
	if !exists {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, u.Scheme)
	}

	dsn, err := driver.DSN(u, username, password)
	if err != nil {
		return nil, "", err
	}
	return driver, dsn, nil
}

func postgresDSN(u *url.URL, username, password string) (string, error) {
	// lib/pq accepts the URL form directly; inject the configured
	// credentials into it.
	out := *u
	out.Scheme = "postgres"
	out.User = url.UserPassword(username, password)
	return out.String(), nil
}

func mysqlDSN(u *url.URL, username, password string) (string, error) {
	cfg := mysql.NewConfig()
	cfg.User = username
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	return cfg.FormatDSN(), nil
}

func sqliteDSN(u *url.URL, _, _ string) (string, error) {
	// Accept "sqlite::memory:", "sqlite://relative.db" and
	// "sqlite:///absolute/path.db". Credentials do not apply.
	dsn := u.Opaque
	if dsn == "" {
		dsn = u.Host + u.Path
	}
	if dsn == "" {
		return "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedDriver)
	}
	if u.RawQuery != "" {
		dsn += "?" + u.RawQuery
	}
	return dsn, nil
}
