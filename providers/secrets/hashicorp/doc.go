// Package hashicorp provides HashiCorp Vault KV v2 storage for the
// phiguard hash-redaction salt.
//
// Hash redaction replaces PHI with a keyed digest so the same value maps to
// the same pseudonym everywhere. For that to hold across a fleet, every
// instance must load the same salt; this package keeps it in Vault's KV v2
// engine with versioning and audit logging.
//
// # Basic Usage
//
//	import (
//	    "context"
//
//	    "github.com/mindwell-health/phiguard"
//	    vaultkv "github.com/mindwell-health/phiguard/providers/secrets/hashicorp"
//	)
//
//	store, err := vaultkv.NewSaltStore()
//	if err != nil {
//	    // handle error
//	}
//	salt, err := store.GetSalt(ctx, "intake-api")
//	if err != nil {
//	    // handle error
//	}
//	cfg := phiguard.DefaultConfig()
//	cfg.Mode = phiguard.ModeHash
//	cfg.HashSalt = salt
//
// # Configuration
//
// The Vault client is configured via environment variables:
//
//	// Required
//	export VAULT_ADDR="https://vault.example.com:8200"
//	export VAULT_TOKEN="hvs.your-token-here"
//
//	// Optional
//	export VAULT_NAMESPACE="my-namespace"   // Vault Enterprise
//	export VAULT_ROLE_ID="..."              // AppRole, with VAULT_SECRET_ID
//	export VAULT_SECRET_ID="..."
//
// # Vault Setup
//
// Enable the KV v2 engine before first use:
//
//	vault secrets enable -path=secret kv-v2
//
// Salts are stored at:
//
//	secret/data/phiguard/{alias}/salt
package hashicorp
