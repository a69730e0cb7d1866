package storage

import (
	"fmt"
	"strings"
)

// StorageID is the composite identifier the host uses to address an
// identity across providers.
type StorageID struct {
	ProviderID string
	ExternalID string
}

// String renders the interchange form "<providerID>:<externalID>".
func (s StorageID) String() string {
	return s.ProviderID + ":" + s.ExternalID
}

// ParseStorageID splits an identifier into its provider and external
// segments. The external segment may itself contain colons; only the
// first separator is significant.
func ParseStorageID(id string) (StorageID, error) {
	providerID, externalID, ok := strings.Cut(id, ":")
	if !ok || providerID == "" || externalID == "" {
		return StorageID{}, fmt.Errorf("%w: %q", ErrMalformedStorageID, id)
	}
	return StorageID{ProviderID: providerID, ExternalID: externalID}, nil
}
