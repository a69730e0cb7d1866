// Package sqlstore implements a user-storage provider backed by a
// relational database. An administrator supplies a connection URL,
// credentials and one SQL template with a ${username} placeholder; the
// provider resolves identities by executing the template as a bound
// parameterized query over a single exclusively-owned connection.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/go-authgate/userstore/internal/cache"
	"github.com/go-authgate/userstore/sqltemplate"
	"github.com/go-authgate/userstore/storage"
)

// ProviderID is the stable provider-type identifier.
const ProviderID = "database-user-storage"

// Configuration property names. Kept verbatim so configs persisted by
// existing deployments keep resolving.
const (
	ConfigURL      = "Url"
	ConfigUsername = "Username"
	ConfigPassword = "Password"
	ConfigSQL      = "Sql"
)

// usernameParam is the template parameter carrying the searched username.
const usernameParam = "username"

var configProperties = storage.NewSchemaBuilder().
	Property(ConfigURL).
	HelpText("Database connection URL").
	Default("postgres://localhost:5432/postgres").
	Add().
	Property(ConfigUsername).
	HelpText("Database connection user").
	Default("postgres").
	Add().
	Property(ConfigPassword).
	HelpText("Database connection password").
	Default("postgres").
	Add().
	Property(ConfigSQL).
	HelpText("User lookup SQL; ${username} is bound to the searched username").
	Default("select username from pg_user where username = '${username}'").
	Add().
	Build()

// Compile-time interface check.
var _ storage.Factory = (*Factory)(nil)

// Factory validates administrator configuration and constructs
// database-backed providers.
type Factory struct {
	validator CredentialValidator
	debug     bool
}

// Option configures a Factory.
type Option func(*Factory)

// WithCredentialValidator replaces the default accept-all credential
// policy on every provider the factory creates.
func WithCredentialValidator(v CredentialValidator) Option {
	return func(f *Factory) { f.validator = v }
}

// WithDebug enables verbose logging, including the underlying error of
// downgraded lookup failures.
func WithDebug(debug bool) Option {
	return func(f *Factory) { f.debug = debug }
}

// NewFactory creates a factory with the given options.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{validator: AcceptAll{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ID returns the provider-type identifier.
func (f *Factory) ID() string {
	return ProviderID
}

// ConfigProperties returns the configuration field descriptors in UI order.
func (f *Factory) ConfigProperties() []storage.ConfigProperty {
	return configProperties
}

// ValidateConfiguration checks the four required values, the lookup
// template, and live connectivity. On success no connection is
// retained; the probe handle is closed before returning.
func (f *Factory) ValidateConfiguration(ctx context.Context, config *storage.ComponentConfig) error {
	rawURL, err := requiredValue(config, ConfigURL)
	if err != nil {
		return err
	}
	username, err := requiredValue(config, ConfigUsername)
	if err != nil {
		return err
	}
	password, err := requiredValue(config, ConfigPassword)
	if err != nil {
		return err
	}
	sqlText, err := requiredValue(config, ConfigSQL)
	if err != nil {
		return err
	}

	query := sqltemplate.Parse(sqlText)
	if !query.Has(usernameParam) {
		return fmt.Errorf("%w: %s must reference ${%s}", ErrInvalidTemplate, ConfigSQL, usernameParam)
	}

	return f.testConnection(ctx, rawURL, username, password)
}

// Create constructs a provider owning one pinned database connection.
// Unlike ValidateConfiguration, failures here abort provider activation
// for the session.
func (f *Factory) Create(session storage.SessionContext, config *storage.ComponentConfig) (storage.Provider, error) {
	ctx := session.Context()

	rawURL, err := requiredValue(config, ConfigURL)
	if err != nil {
		return nil, err
	}
	username, err := requiredValue(config, ConfigUsername)
	if err != nil {
		return nil, err
	}
	password, err := requiredValue(config, ConfigPassword)
	if err != nil {
		return nil, err
	}
	sqlText, err := requiredValue(config, ConfigSQL)
	if err != nil {
		return nil, err
	}

	driver, dsn, err := ResolveDriver(rawURL, username, password)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver.Name, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	// The provider owns exactly one connection for its whole lifetime.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return &Provider{
		id:        componentID(config),
		db:        db,
		conn:      conn,
		query:     sqltemplate.Parse(sqlText),
		bind:      driver.Bind,
		validator: f.validator,
		debug:     f.debug,
		users:     cache.NewMemory[storage.UserModel](),
	}, nil
}

// testConnection opens, pings and immediately closes a connection.
func (f *Factory) testConnection(ctx context.Context, rawURL, username, password string) error {
	driver, dsn, err := ResolveDriver(rawURL, username, password)
	if err != nil {
		return err
	}

	db, err := sql.Open(driver.Name, dsn)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	if f.debug {
		log.Printf("[Factory] connection succeeded: url=%s username=%s", rawURL, username)
	}
	return nil
}

// requiredValue reads a config value with environment expansion and
// rejects blanks, naming the offending field.
func requiredValue(config *storage.ComponentConfig, key string) (string, error) {
	value := config.Value(key)
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingConfig, key)
	}
	return value, nil
}

// componentID is the storage-identifier prefix for identities resolved
// by this component instance. Falls back to the provider-type id when
// the host assigned none.
func componentID(config *storage.ComponentConfig) string {
	if config.ID != "" {
		return config.ID
	}
	return ProviderID
}
