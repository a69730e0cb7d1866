package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/go-authgate/userstore/internal/cache"
	"github.com/go-authgate/userstore/sqltemplate"
	"github.com/go-authgate/userstore/storage"
)

// Compile-time interface check.
var _ storage.Provider = (*Provider)(nil)

// Provider is the per-session runtime. It owns one pinned database
// connection from construction until Close and must not be shared
// across sessions.
type Provider struct {
	id        string
	db        *sql.DB
	conn      *sql.Conn
	query     *sqltemplate.Query
	bind      sqltemplate.Binder
	validator CredentialValidator
	debug     bool

	// users holds identities that validated successfully at least once.
	// Lookups read it but never write it; IsValid is the only writer.
	users cache.Cache[storage.UserModel]
}

// GetUserByID resolves a storage identifier produced by this provider
// and delegates to the username lookup.
func (p *Provider) GetUserByID(ctx context.Context, realm storage.RealmRef, id string) (storage.UserModel, error) {
	sid, err := storage.ParseStorageID(id)
	if err != nil {
		p.logLookupFailure("id", id, err)
		return nil, storage.ErrUserNotFound
	}
	return p.GetUserByUsername(ctx, realm, sid.ExternalID)
}

// GetUserByUsername resolves a username, serving previously validated
// users from the identity cache without touching the store.
func (p *Provider) GetUserByUsername(ctx context.Context, realm storage.RealmRef, username string) (storage.UserModel, error) {
	if user, err := p.users.Get(ctx, username); err == nil {
		return user, nil
	}

	name, err := p.queryUsername(ctx, username)
	if err != nil {
		// Execution failures are downgraded to a miss so one broken
		// provider cannot take down the host's provider chain.
		p.logLookupFailure("username", username, err)
		return nil, storage.ErrUserNotFound
	}
	if name == "" {
		return nil, storage.ErrUserNotFound
	}

	return storage.NewUserAdapter(p.id, name), nil
}

// GetUserByEmail is not implemented by this store.
// TODO: add a second configurable template resolving email to username.
func (p *Provider) GetUserByEmail(ctx context.Context, realm storage.RealmRef, email string) (storage.UserModel, error) {
	return nil, storage.ErrUserNotFound
}

// queryUsername renders the configured template with the searched
// username bound as a query parameter and reads at most one scalar
// result. An empty return with nil error means no match.
func (p *Provider) queryUsername(ctx context.Context, username string) (string, error) {
	stmt, args, err := p.query.Render(p.bind, map[string]any{usernameParam: username})
	if err != nil {
		return "", err
	}

	// Scope the statement in a transaction so resources are released on
	// every exit path. The lookup never writes, so rollback is the only
	// way out.
	tx, err := p.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback() //nolint:errcheck

	var name sql.NullString
	if err := tx.QueryRowContext(ctx, stmt, args...).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	if !name.Valid || strings.TrimSpace(name.String) == "" {
		return "", nil
	}
	return name.String, nil
}

// IsConfiguredFor reports whether the provider handles the credential
// type for the user. This store claims every type it supports.
func (p *Provider) IsConfiguredFor(realm storage.RealmRef, user storage.UserModel, credentialType string) bool {
	return p.SupportsCredentialType(credentialType)
}

// IsValid verifies a presented credential via the configured strategy.
// Successful validation is the sole point that populates the identity
// cache; lookups never do.
func (p *Provider) IsValid(ctx context.Context, realm storage.RealmRef, user storage.UserModel, input storage.CredentialInput) bool {
	if !p.validator.Validate(ctx, user, input) {
		return false
	}

	_ = p.users.Set(ctx, user.Username(), user, 0)
	if p.debug {
		log.Printf("[Provider] credential accepted for %q", user.Username())
	}
	return true
}

// UpdateCredential always rejects; this store never accepts credential
// writes.
func (p *Provider) UpdateCredential(ctx context.Context, realm storage.RealmRef, user storage.UserModel, input storage.CredentialInput) error {
	return storage.ErrReadOnly
}

// DisableCredentialType is a no-op for this store.
func (p *Provider) DisableCredentialType(ctx context.Context, realm storage.RealmRef, user storage.UserModel, credentialType string) {
}

// SupportsCredentialType reports whether the provider understands the
// credential type.
func (p *Provider) SupportsCredentialType(credentialType string) bool {
	return true
}

// DisableableCredentialTypes returns the credential types that can be
// disabled for the user; none can.
func (p *Provider) DisableableCredentialTypes(realm storage.RealmRef, user storage.UserModel) []string {
	return nil
}

// Close releases the pinned connection and the database handle.
// Best-effort: release errors are swallowed and a second Close is safe.
func (p *Provider) Close() error {
	if p.conn != nil {
		_ = p.conn.Close()
	}
	if p.db != nil {
		_ = p.db.Close()
	}
	_ = p.users.Close()
	return nil
}

func (p *Provider) logLookupFailure(kind, value string, err error) {
	if p.debug {
		log.Printf("[Provider] lookup by %s %q failed: %v", kind, value, err)
		return
	}
	log.Printf("[Provider] lookup by %s %q failed", kind, value)
}
