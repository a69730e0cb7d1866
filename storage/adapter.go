package storage

// UserAdapter is the generic UserModel implementation providers return
// from lookups. It carries only what the lookup resolved; everything
// else about the user lives in the backing store.
type UserAdapter struct {
	providerID string
	username   string
}

// Compile-time interface check.
var _ UserModel = (*UserAdapter)(nil)

// NewUserAdapter wraps a resolved username in a UserModel addressed
// under the given provider id.
func NewUserAdapter(providerID, username string) *UserAdapter {
	return &UserAdapter{providerID: providerID, username: username}
}

func (u *UserAdapter) ID() string {
	return StorageID{ProviderID: u.providerID, ExternalID: u.username}.String()
}

func (u *UserAdapter) Username() string {
	return u.username
}
