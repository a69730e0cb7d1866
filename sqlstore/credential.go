package sqlstore

import (
	"context"

	"github.com/go-authgate/userstore/storage"
)

// CredentialValidator decides whether a presented credential is valid
// for a resolved user. The provider delegates IsValid to this strategy
// so real verification logic can be swapped in without touching the
// lookup path.
type CredentialValidator interface {
	Validate(ctx context.Context, user storage.UserModel, input storage.CredentialInput) bool
}

// ValidatorFunc adapts a function to the CredentialValidator interface.
type ValidatorFunc func(ctx context.Context, user storage.UserModel, input storage.CredentialInput) bool

func (f ValidatorFunc) Validate(ctx context.Context, user storage.UserModel, input storage.CredentialInput) bool {
	return f(ctx, user, input)
}

// AcceptAll approves every presented credential. It is the default
// policy: the store only resolves identities, it holds no secrets to
// verify against.
type AcceptAll struct{}

func (AcceptAll) Validate(context.Context, storage.UserModel, storage.CredentialInput) bool {
	return true
}
