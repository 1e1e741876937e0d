package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohankatakam/dbstats/internal/errors"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// CredentialManager resolves a target's credential triple
// Priority: Environment Variables → Keychain → Credentials File → Interactive Prompt
type CredentialManager struct {
	mode      DeploymentMode
	keyring   *KeyringManager
	credsPath string
	database  string

	// prompt I/O, replaced in tests
	in  io.Reader
	out io.Writer
}

// fileCredentials is one target's entry in the credentials file
type fileCredentials struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database,omitempty"`
}

// credentialsFile is ~/.config/dbstats/credentials.yaml
type credentialsFile struct {
	Local  fileCredentials `yaml:"local"`
	Remote fileCredentials `yaml:"remote"`
}

func (f credentialsFile) entry(name TargetName) fileCredentials {
	if name == TargetLocal {
		return f.Local
	}
	return f.Remote
}

// DefaultCredentialsPath returns the credentials file location
func DefaultCredentialsPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "dbstats", "credentials.yaml")
}

// NewCredentialManager creates a credential manager for the given config
func NewCredentialManager(cfg *Config) *CredentialManager {
	credsPath := cfg.CredentialsFile
	if credsPath == "" {
		credsPath = DefaultCredentialsPath()
	}
	return &CredentialManager{
		mode:      DetectMode(),
		keyring:   NewKeyringManager(),
		credsPath: credsPath,
		database:  cfg.Database,
		in:        os.Stdin,
		out:       os.Stderr,
	}
}

// Resolve builds the Target for name, filling each field from the first
// source that has it.
func (cm *CredentialManager) Resolve(name TargetName) (Target, error) {
	vars := name.envVars()
	target := Target{
		Name:     name,
		URI:      os.Getenv(vars.URI),
		Username: os.Getenv(vars.Username),
		Password: os.Getenv(vars.Password),
		Database: os.Getenv(vars.Database),
	}

	if target.Password == "" && cm.usesKeychain() {
		if password, err := cm.keyring.GetPassword(name); err == nil {
			target.Password = password
		}
	}

	if creds, err := cm.loadCredentialsFile(); err == nil {
		entry := creds.entry(name)
		target.URI = firstNonEmpty(target.URI, entry.URI)
		target.Username = firstNonEmpty(target.Username, entry.Username)
		target.Password = firstNonEmpty(target.Password, entry.Password)
		target.Database = firstNonEmpty(target.Database, entry.Database)
	}

	target.Database = firstNonEmpty(target.Database, cm.database)

	if target.Password == "" && target.URI != "" && cm.mode.AllowsInteractivePrompts() {
		password, err := cm.promptForPassword(target)
		if err != nil {
			return target, err
		}
		target.Password = password
	}

	if err := target.Validate(); err != nil {
		return target, err
	}
	return target, nil
}

// SaveCredentials writes a target's triple to the credentials file. The
// password goes to the keychain instead when Resolve would read it back
// from there, that is in interactive mode with a keychain available.
func (cm *CredentialManager) SaveCredentials(target Target) error {
	creds, err := cm.loadCredentialsFile()
	if err != nil {
		creds = &credentialsFile{}
	}

	entry := fileCredentials{URI: target.URI, Username: target.Username, Database: target.Database}
	if cm.usesKeychain() {
		if err := cm.keyring.SavePassword(target.Name, target.Password); err != nil {
			return errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityHigh,
				"failed to save password to keychain")
		}
	} else {
		entry.Password = target.Password
	}

	if target.Name == TargetLocal {
		creds.Local = entry
	} else {
		creds.Remote = entry
	}
	return cm.saveCredentialsFile(creds)
}

// Forget removes a target's saved password from the keychain and its
// entry from the credentials file. Missing entries are not an error.
func (cm *CredentialManager) Forget(name TargetName) error {
	if cm.keyring.IsAvailable() {
		if err := cm.keyring.DeletePassword(name); err != nil {
			return errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityMedium,
				"failed to delete password from keychain")
		}
	}

	creds, err := cm.loadCredentialsFile()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if name == TargetLocal {
		creds.Local = fileCredentials{}
	} else {
		creds.Remote = fileCredentials{}
	}
	return cm.saveCredentialsFile(creds)
}

func (cm *CredentialManager) usesKeychain() bool {
	return cm.mode.AllowsKeychain() && cm.keyring.IsAvailable()
}

func (cm *CredentialManager) loadCredentialsFile() (*credentialsFile, error) {
	data, err := os.ReadFile(cm.credsPath)
	if err != nil {
		return nil, err
	}

	var creds credentialsFile
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityMedium,
			fmt.Sprintf("invalid credentials file %s", cm.credsPath))
	}
	return &creds, nil
}

func (cm *CredentialManager) saveCredentialsFile(creds *credentialsFile) error {
	if err := os.MkdirAll(filepath.Dir(cm.credsPath), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(creds)
	if err != nil {
		return err
	}

	// user-only read/write
	return os.WriteFile(cm.credsPath, data, 0600)
}

func (cm *CredentialManager) promptForPassword(target Target) (string, error) {
	fmt.Fprintf(cm.out, "Password for %s@%s: ", target.Username, target.URI)
	password, err := cm.readSecurely()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityCritical,
			"failed to read password")
	}
	return password, nil
}

// readSecurely reads a password without echo when stdin is a terminal
func (cm *CredentialManager) readSecurely() (string, error) {
	if f, ok := cm.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytes, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cm.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(bytes)), nil
	}

	reader := bufio.NewReader(cm.in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
