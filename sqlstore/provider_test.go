package sqlstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-authgate/userstore/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestProvider creates a provider over a fresh sqlite database
// seeded with the given usernames.
func newTestProvider(t *testing.T, opts ...Option) (storage.Provider, *sql.DB) {
	t.Helper()

	url, db := newTestDB(t)
	for _, username := range []string{"alice", "bob", "carol"} {
		_, err := db.Exec(`insert into accounts (username, email) values (?, ?)`, username, username+"@example.com")
		require.NoError(t, err)
	}

	provider, err := NewFactory(opts...).Create(testSession{ctx: context.Background()}, testConfig(url))
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })

	return provider, db
}

func TestGetUserByUsername(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	user, err := provider.GetUserByUsername(ctx, testRealm{}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username())
	assert.Equal(t, "database-user-storage:alice", user.ID())
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	provider, _ := newTestProvider(t)

	_, err := provider.GetUserByUsername(context.Background(), testRealm{}, "mallory")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestGetUserByIDDelegatesToUsername(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	byID, err := provider.GetUserByID(ctx, testRealm{}, "database-user-storage:carol")
	require.NoError(t, err)

	byUsername, err := provider.GetUserByUsername(ctx, testRealm{}, "carol")
	require.NoError(t, err)

	assert.Equal(t, byUsername.ID(), byID.ID())
	assert.Equal(t, byUsername.Username(), byID.Username())
}

func TestGetUserByIDMalformed(t *testing.T) {
	provider, _ := newTestProvider(t)

	_, err := provider.GetUserByID(context.Background(), testRealm{}, "no-separator")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestGetUserByEmailUnimplemented(t *testing.T) {
	provider, _ := newTestProvider(t)

	_, err := provider.GetUserByEmail(context.Background(), testRealm{}, "alice@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

// Lookups must not populate the cache: after the backing row is gone,
// a repeated lookup hits the store again and misses.
func TestLookupDoesNotPopulateCache(t *testing.T) {
	provider, db := newTestProvider(t)
	ctx := context.Background()

	_, err := provider.GetUserByUsername(ctx, testRealm{}, "alice")
	require.NoError(t, err)

	_, err = db.Exec(`delete from accounts where username = 'alice'`)
	require.NoError(t, err)

	_, err = provider.GetUserByUsername(ctx, testRealm{}, "alice")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

// Validation is the sole cache-population point: once a user validated,
// lookups serve the cached identity even when the store breaks.
func TestValidationPopulatesCache(t *testing.T) {
	provider, db := newTestProvider(t)
	ctx := context.Background()

	user, err := provider.GetUserByUsername(ctx, testRealm{}, "bob")
	require.NoError(t, err)

	require.True(t, provider.IsValid(ctx, testRealm{}, user, storage.PasswordInput{Password: "anything"}))

	// Break the backing store entirely.
	_, err = db.Exec(`drop table accounts`)
	require.NoError(t, err)

	cached, err := provider.GetUserByUsername(ctx, testRealm{}, "bob")
	require.NoError(t, err)
	assert.Equal(t, user.ID(), cached.ID())

	// Never-validated users still go to the (now broken) store.
	_, err = provider.GetUserByUsername(ctx, testRealm{}, "carol")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

// Execution failures surface as not-found, never as the SQL error.
func TestLookupFailureDowngradedToNotFound(t *testing.T) {
	url, _ := newTestDB(t)
	cfg := testConfig(url)
	cfg.Set(ConfigSQL, "select username from no_such_table where username = '${username}'")

	provider, err := NewFactory().Create(testSession{ctx: context.Background()}, cfg)
	require.NoError(t, err)
	defer provider.Close()

	_, err = provider.GetUserByUsername(context.Background(), testRealm{}, "alice")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

// A blank username column counts as no match.
func TestBlankResultIsNotFound(t *testing.T) {
	url, db := newTestDB(t)
	_, err := db.Exec(`insert into accounts (username, email) values ('', 'ghost@example.com')`)
	require.NoError(t, err)

	cfg := testConfig(url)
	cfg.Set(ConfigSQL, "select username from accounts where email = '${username}'")

	provider, err := NewFactory().Create(testSession{ctx: context.Background()}, cfg)
	require.NoError(t, err)
	defer provider.Close()

	_, err = provider.GetUserByUsername(context.Background(), testRealm{}, "ghost@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUpdateCredentialAlwaysReadOnly(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	user := storage.NewUserAdapter(ProviderID, "alice")
	for _, input := range []storage.CredentialInput{
		storage.PasswordInput{Password: "new-secret"},
		storage.PasswordInput{},
	} {
		err := provider.UpdateCredential(ctx, testRealm{}, user, input)
		assert.ErrorIs(t, err, storage.ErrReadOnly)
	}
}

func TestCredentialTypeContract(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()
	user := storage.NewUserAdapter(ProviderID, "alice")

	assert.True(t, provider.SupportsCredentialType(storage.CredentialTypePassword))
	assert.True(t, provider.SupportsCredentialType("otp"))
	assert.True(t, provider.IsConfiguredFor(testRealm{}, user, storage.CredentialTypePassword))
	assert.Empty(t, provider.DisableableCredentialTypes(testRealm{}, user))

	// No-op, must not panic.
	provider.DisableCredentialType(ctx, testRealm{}, user, storage.CredentialTypePassword)
}

func TestCustomCredentialValidator(t *testing.T) {
	rejectAll := ValidatorFunc(func(ctx context.Context, user storage.UserModel, input storage.CredentialInput) bool {
		return false
	})
	provider, db := newTestProvider(t, WithCredentialValidator(rejectAll))
	ctx := context.Background()

	user, err := provider.GetUserByUsername(ctx, testRealm{}, "alice")
	require.NoError(t, err)

	assert.False(t, provider.IsValid(ctx, testRealm{}, user, storage.PasswordInput{Password: "x"}))

	// Rejected validation must not populate the cache.
	_, err = db.Exec(`delete from accounts where username = 'alice'`)
	require.NoError(t, err)
	_, err = provider.GetUserByUsername(ctx, testRealm{}, "alice")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestCloseIsIdempotent(t *testing.T) {
	url, db := newTestDB(t)
	_, err := db.Exec(`insert into accounts (username) values ('alice')`)
	require.NoError(t, err)

	provider, err := NewFactory().Create(testSession{ctx: context.Background()}, testConfig(url))
	require.NoError(t, err)

	assert.NoError(t, provider.Close())
	assert.NoError(t, provider.Close())
}
