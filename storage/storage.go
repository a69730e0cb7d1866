// Package storage defines the contracts between an IAM host and its
// pluggable user-storage providers. The host implements the runtime
// shapes (sessions, realms); providers implement Factory and Provider.
package storage

import "context"

// SessionContext is the host's per-session scope handed to a factory
// when a provider is created. Providers treat it as opaque apart from
// the request context it carries.
type SessionContext interface {
	Context() context.Context
}

// RealmRef identifies the realm an operation runs against. Providers
// receive it for routing and logging only.
type RealmRef interface {
	Name() string
}

// UserModel is a resolved identity as exposed to the host's
// authentication pipeline.
type UserModel interface {
	// ID returns the cross-provider storage identifier,
	// "<providerID>:<externalID>".
	ID() string

	// Username returns the external username the identity resolved from.
	Username() string
}

// CredentialInput carries a credential presented during authentication.
type CredentialInput interface {
	Type() string
	Value() string
}

// CredentialTypePassword is the credential type for plain password input.
const CredentialTypePassword = "password"

// PasswordInput is a password CredentialInput.
type PasswordInput struct {
	Password string
}

func (PasswordInput) Type() string { return CredentialTypePassword }

func (p PasswordInput) Value() string { return p.Password }

// Provider is the per-session capability set a user-storage backend
// exposes to the host. A provider instance is never invoked
// concurrently; the host creates one per session scope and must call
// Close when the scope ends.
type Provider interface {
	// GetUserByID resolves a storage identifier produced by this
	// provider. Lookup misses and failures both report ErrUserNotFound.
	GetUserByID(ctx context.Context, realm RealmRef, id string) (UserModel, error)

	// GetUserByUsername resolves a username against the backing store.
	GetUserByUsername(ctx context.Context, realm RealmRef, username string) (UserModel, error)

	// GetUserByEmail resolves an email address against the backing store.
	GetUserByEmail(ctx context.Context, realm RealmRef, email string) (UserModel, error)

	// IsConfiguredFor reports whether the provider handles the given
	// credential type for the user.
	IsConfiguredFor(realm RealmRef, user UserModel, credentialType string) bool

	// IsValid verifies a presented credential.
	IsValid(ctx context.Context, realm RealmRef, user UserModel, input CredentialInput) bool

	// UpdateCredential writes a new credential to the backing store.
	UpdateCredential(ctx context.Context, realm RealmRef, user UserModel, input CredentialInput) error

	// DisableCredentialType disables a credential type for the user.
	DisableCredentialType(ctx context.Context, realm RealmRef, user UserModel, credentialType string)

	// SupportsCredentialType reports whether the provider understands
	// the credential type at all.
	SupportsCredentialType(credentialType string) bool

	// DisableableCredentialTypes lists the credential types that can be
	// disabled for the user.
	DisableableCredentialTypes(realm RealmRef, user UserModel) []string

	// Close releases the provider's resources. It never fails and is
	// safe to call more than once.
	Close() error
}

// Factory validates administrator configuration and constructs
// providers. One factory instance serves the whole host process.
type Factory interface {
	// ID returns the stable provider-type identifier.
	ID() string

	// ConfigProperties returns the ordered field descriptors consumed
	// by the host's configuration UI.
	ConfigProperties() []ConfigProperty

	// ValidateConfiguration checks an administrator-supplied config,
	// including a live connectivity probe. It has no persistent side
	// effect; failures are recoverable by the configuring actor.
	ValidateConfiguration(ctx context.Context, config *ComponentConfig) error

	// Create constructs a provider bound to the session. Any failure
	// aborts provider activation for that session.
	Create(session SessionContext, config *ComponentConfig) (Provider, error)
}
