package hashicorp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/hashicorp/vault/api"
	"github.com/mindwell-health/phiguard"
)

// SaltStore keeps the hash-redaction salt in HashiCorp Vault's KV v2
// engine, so every service instance derives identical pseudonyms for the
// same PHI value.
type SaltStore struct {
	client *api.Client
}

// NewSaltStore creates a SaltStore. Configuration comes from environment
// variables (see createVaultClient). The KV v2 engine must be enabled in
// Vault before use:
//
//	vault secrets enable -path=secret kv-v2
func NewSaltStore() (*SaltStore, error) {
	client, err := createVaultClient()
	if err != nil {
		return nil, err
	}
	return &SaltStore{client: client}, nil
}

// StoragePath returns the KV v2 path for an alias, e.g. alias "intake-api"
// maps to "secret/data/phiguard/intake-api/salt". The "/data/" segment is
// required by the KV v2 API.
func (s *SaltStore) StoragePath(alias string) string {
	return fmt.Sprintf(phiguard.VaultSaltPathTemplate, alias)
}

// StoreSalt writes a salt for the alias. An existing salt is versioned by
// KV v2 rather than overwritten. The salt must be exactly
// phiguard.SaltLength bytes.
func (s *SaltStore) StoreSalt(ctx context.Context, alias string, salt []byte) error {
	if len(salt) != phiguard.SaltLength {
		return fmt.Errorf("%w: salt must be exactly %d bytes, got %d",
			phiguard.ErrInvalidConfiguration, phiguard.SaltLength, len(salt))
	}

	// KV v2 requires payloads wrapped in a "data" key
	data := map[string]interface{}{
		"data": map[string]interface{}{
			"value": base64.StdEncoding.EncodeToString(salt),
		},
	}

	if _, err := s.client.Logical().Write(s.StoragePath(alias), data); err != nil {
		return fmt.Errorf("%w: failed to store salt in Vault KV: %w",
			phiguard.ErrSecretStorageUnavailable, err)
	}
	return nil
}

// GetSalt retrieves the salt for an alias. It returns an error if the salt
// is missing or has the wrong length.
func (s *SaltStore) GetSalt(ctx context.Context, alias string) ([]byte, error) {
	secret, err := s.client.Logical().Read(s.StoragePath(alias))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read salt from Vault KV: %w",
			phiguard.ErrSecretStorageUnavailable, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("%w: salt not found for alias: %s",
			phiguard.ErrUninitializedSalt, alias)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: invalid KV v2 secret format for alias: %s",
			phiguard.ErrSecretStorageUnavailable, alias)
	}
	encoded, ok := data["value"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: salt value not found for alias: %s",
			phiguard.ErrUninitializedSalt, alias)
	}

	salt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode salt: %w",
			phiguard.ErrSecretStorageUnavailable, err)
	}
	if len(salt) != phiguard.SaltLength {
		return nil, fmt.Errorf("%w: invalid salt length: expected %d bytes, got %d",
			phiguard.ErrSecretStorageUnavailable, phiguard.SaltLength, len(salt))
	}
	return salt, nil
}

// SaltExists reports whether a salt is stored for the alias. Errors are
// returned only for actual failures, not for "not found".
func (s *SaltStore) SaltExists(ctx context.Context, alias string) (bool, error) {
	secret, err := s.client.Logical().Read(s.StoragePath(alias))
	if err != nil {
		return false, fmt.Errorf("%w: failed to check if salt exists: %w",
			phiguard.ErrSecretStorageUnavailable, err)
	}
	if secret == nil || secret.Data == nil {
		return false, nil
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return false, nil
	}
	_, ok = data["value"].(string)
	return ok, nil
}
