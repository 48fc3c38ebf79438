package credentials

import (
	"fmt"

	"dms-go/internal/config"
)

// NewStoreFromConfig creates a Store based on the credentials config type.
func NewStoreFromConfig(cfg config.CredentialsConfig, passphrase PassphraseFunc) (Store, error) {
	switch cfg.Type {
	case "file", "":
		return NewFileStore(cfg.TokenPath), nil
	case "age":
		if cfg.RecipientPath == "" || cfg.IdentityPath == "" {
			return nil, fmt.Errorf("recipient_path and identity_path required for age credentials")
		}
		return NewAgeStore(cfg.TokenPath, cfg.RecipientPath, cfg.IdentityPath, passphrase), nil
	default:
		return nil, fmt.Errorf("unknown credentials type: %q", cfg.Type)
	}
}
