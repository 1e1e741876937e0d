package config

import (
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name in the OS keychain
const KeyringService = "dbstats"

// KeyringManager handles secure credential storage in OS keychain
type KeyringManager struct {
	logger *slog.Logger
}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager() *KeyringManager {
	return &KeyringManager{
		logger: slog.Default().With("component", "keyring"),
	}
}

// passwordItem is the keychain item holding a target's password
func passwordItem(target TargetName) string {
	return fmt.Sprintf("%s-neo4j-password", target)
}

// SavePassword stores a target's password in the OS keychain
// - macOS: Keychain Access.app → "dbstats" → "<target>-neo4j-password"
// - Windows: Credential Manager → "dbstats"
// - Linux: Secret Service (requires libsecret)
func (km *KeyringManager) SavePassword(target TargetName, password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if err := keyring.Set(KeyringService, passwordItem(target), password); err != nil {
		km.logger.Error("failed to save password to keychain", "target", target, "error", err)
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	km.logger.Info("password saved to keychain", "service", KeyringService, "target", target)
	return nil
}

// GetPassword retrieves a target's password. A missing item is not an error.
func (km *KeyringManager) GetPassword(target TargetName) (string, error) {
	password, err := keyring.Get(KeyringService, passwordItem(target))
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		km.logger.Debug("failed to read password from keychain", "target", target, "error", err)
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}

	km.logger.Debug("password retrieved from keychain", "target", target)
	return password, nil
}

// DeletePassword removes a target's password from the OS keychain
func (km *KeyringManager) DeletePassword(target TargetName) error {
	err := keyring.Delete(KeyringService, passwordItem(target))
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}
	return nil
}

// IsAvailable checks if OS keychain is available
// Returns false on headless systems where no secret service is running
func (km *KeyringManager) IsAvailable() bool {
	_, err := keyring.Get(KeyringService, "test-availability")
	if err == keyring.ErrNotFound {
		return true
	}
	if err != nil {
		km.logger.Debug("keychain not available", "error", err)
		return false
	}
	return true
}
