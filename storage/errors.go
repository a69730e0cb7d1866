package storage

import "errors"

var (
	// ErrUserNotFound is returned when a lookup resolves no identity.
	// Lookup failures are downgraded to this error as well, so callers
	// cannot distinguish a missing user from a failed lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrReadOnly is returned for credential writes against a store
	// that does not accept them.
	ErrReadOnly = errors.New("user store is read-only")

	// ErrMalformedStorageID is returned when a storage identifier does
	// not have the <providerID>:<externalID> form.
	ErrMalformedStorageID = errors.New("malformed storage id")
)
