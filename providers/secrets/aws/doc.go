// Package aws provides AWS Secrets Manager storage for the phiguard
// hash-redaction salt.
//
// Hash redaction replaces PHI with a keyed digest so the same value maps to
// the same pseudonym everywhere. For that to hold across a fleet, every
// instance must load the same salt; this package keeps it in Secrets
// Manager with IAM-controlled access and CloudTrail audit history.
//
// # Basic Usage
//
//	import (
//	    "context"
//
//	    "github.com/mindwell-health/phiguard"
//	    awssecrets "github.com/mindwell-health/phiguard/providers/secrets/aws"
//	)
//
//	store, err := awssecrets.NewSaltStore(ctx, awssecrets.Config{Region: "us-east-1"})
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
// Credentials and region resolve through the standard AWS SDK chain
// (environment variables, shared config file, instance role). Salts are
// stored under the secret name:
//
//	phiguard/{alias}/salt
//
// # Bootstrapping a Salt
//
// Generate once per alias and store:
//
//	salt := make([]byte, phiguard.SaltLength)
//	if _, err := rand.Read(salt); err != nil {
//	    // handle error
//	}
//	if err := store.StoreSalt(ctx, "intake-api", salt); err != nil {
//	    // handle error
//	}
package aws
