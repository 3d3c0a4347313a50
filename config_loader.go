package phiguard

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadConfigFromEnvironment loads configuration from environment variables.
//
// This function follows the 12-factor app methodology where configuration is
// read from the environment. All variables are optional; unset variables
// fall back to the documented defaults, so a process with no PHIGUARD_*
// variables set gets a fully enabled engine with full redaction.
//
// Recognized environment variables:
//   - PHIGUARD_ENABLED: "false", "0" or "off" disables sanitization
//   - PHIGUARD_REDACTION_MODE: full | partial | hash
//   - PHIGUARD_REDACTION_MARKER: marker template, e.g. "[REDACTED:{LABEL}]"
//   - PHIGUARD_SENSITIVE_FIELDS: comma-separated key names
//   - PHIGUARD_MAX_INPUT_SIZE: scan cap in bytes
//
// Returns an error if a set variable fails validation.
//
// Example usage:
//
//	// export PHIGUARD_REDACTION_MODE="hash"
//	// export PHIGUARD_SENSITIVE_FIELDS="ssn,dob,mrn"
//
//	cfg, err := phiguard.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s, err := phiguard.New(cfg, phiguard.DefaultCatalog(phiguard.PostureStandard))
func LoadConfigFromEnvironment() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvEnabled); v != "" {
		switch strings.ToLower(v) {
		case "false", "0", "off":
			cfg.Enabled = false
		}
	}

	if v := os.Getenv(EnvRedactionMode); v != "" {
		cfg.Mode = ParseRedactionMode(strings.ToLower(v))
	}

	if v := os.Getenv(EnvRedactionMarker); v != "" {
		cfg.Marker = v
	}

	if v := os.Getenv(EnvSensitiveFields); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.SensitiveFields = append(cfg.SensitiveFields, name)
			}
		}
	}

	if v := os.Getenv(EnvMaxInputSize); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return Config{}, fmt.Errorf("%w: %s must be a positive integer, got %q",
				ErrInvalidConfiguration, EnvMaxInputSize, v)
		}
		cfg.MaxInputSize = size
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
