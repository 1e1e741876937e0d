package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// clearTargetEnv blanks every credential variable so the host environment
// cannot leak into a test.
func clearTargetEnv(t *testing.T) {
	t.Helper()
	for _, name := range []TargetName{TargetLocal, TargetRemote} {
		vars := name.envVars()
		for _, key := range []string{vars.URI, vars.Username, vars.Password, vars.Database} {
			t.Setenv(key, "")
		}
	}
}

func newTestManager(t *testing.T, mode DeploymentMode, input string) (*CredentialManager, *bytes.Buffer) {
	t.Helper()
	keyring.MockInit()
	out := &bytes.Buffer{}
	return &CredentialManager{
		mode:      mode,
		keyring:   NewKeyringManager(),
		credsPath: filepath.Join(t.TempDir(), "credentials.yaml"),
		in:        strings.NewReader(input),
		out:       out,
	}, out
}

func TestResolve_FromEnvironment(t *testing.T) {
	clearTargetEnv(t)
	t.Setenv("LOCAL_NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("LOCAL_NEO4J_USERNAME", "neo4j")
	t.Setenv("LOCAL_NEO4J_PASSWORD", "local-pass")
	t.Setenv("NEO4J_URI", "neo4j+s://remote.example.com")

	cm, _ := newTestManager(t, ModeCI, "")
	target, err := cm.Resolve(TargetLocal)
	require.NoError(t, err)

	assert.Equal(t, TargetLocal, target.Name)
	assert.Equal(t, "bolt://localhost:7687", target.URI)
	assert.Equal(t, "neo4j", target.Username)
	assert.Equal(t, "local-pass", target.Password)
	assert.Empty(t, target.Database, "no database named, server home database is used")
}

func TestResolve_DatabaseOverrides(t *testing.T) {
	clearTargetEnv(t)
	t.Setenv("NEO4J_URI", "neo4j://remote.example.com")
	t.Setenv("NEO4J_USERNAME", "reader")
	t.Setenv("NEO4J_PASSWORD", "remote-pass")

	cm, _ := newTestManager(t, ModeCI, "")
	cm.database = "fromconfig"
	target, err := cm.Resolve(TargetRemote)
	require.NoError(t, err)
	assert.Equal(t, "fromconfig", target.Database)

	t.Setenv("NEO4J_DATABASE", "fromenv")
	target, err = cm.Resolve(TargetRemote)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", target.Database, "target variable wins over config")
}

func TestResolve_RemoteUsesUnprefixedVariables(t *testing.T) {
	clearTargetEnv(t)
	t.Setenv("NEO4J_URI", "neo4j+s://remote.example.com")
	t.Setenv("NEO4J_USERNAME", "reader")
	t.Setenv("NEO4J_PASSWORD", "remote-pass")
	t.Setenv("NEO4J_DATABASE", "graph")

	cm, _ := newTestManager(t, ModeCI, "")
	target, err := cm.Resolve(TargetRemote)
	require.NoError(t, err)

	assert.Equal(t, "reader", target.Username)
	assert.Equal(t, "graph", target.Database)
}

func TestResolve_KeychainPassword(t *testing.T) {
	clearTargetEnv(t)
	t.Setenv("NEO4J_URI", "neo4j://remote.example.com")
	t.Setenv("NEO4J_USERNAME", "reader")

	cm, _ := newTestManager(t, ModeInteractive, "")
	require.NoError(t, cm.keyring.SavePassword(TargetRemote, "from-keychain"))

	target, err := cm.Resolve(TargetRemote)
	require.NoError(t, err)
	assert.Equal(t, "from-keychain", target.Password)
}

func TestResolve_KeychainSkippedInCI(t *testing.T) {
	clearTargetEnv(t)
	t.Setenv("NEO4J_URI", "neo4j://remote.example.com")
	t.Setenv("NEO4J_USERNAME", "reader")

	cm, _ := newTestManager(t, ModeCI, "")
	require.NoError(t, cm.keyring.SavePassword(TargetRemote, "from-keychain"))

	_, err := cm.Resolve(TargetRemote)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEO4J_PASSWORD")
}

func TestResolve_CredentialsFileFillsGaps(t *testing.T) {
	clearTargetEnv(t)
	t.Setenv("LOCAL_NEO4J_USERNAME", "env-user")

	cm, _ := newTestManager(t, ModeCI, "")
	require.NoError(t, os.WriteFile(cm.credsPath, []byte(`
local:
  uri: bolt://127.0.0.1:7687
  username: file-user
  password: file-pass
  database: movies
`), 0600))

	target, err := cm.Resolve(TargetLocal)
	require.NoError(t, err)

	assert.Equal(t, "bolt://127.0.0.1:7687", target.URI)
	assert.Equal(t, "env-user", target.Username, "environment wins over file")
	assert.Equal(t, "file-pass", target.Password)
	assert.Equal(t, "movies", target.Database)
}

func TestResolve_PromptsForPassword(t *testing.T) {
	clearTargetEnv(t)
	t.Setenv("LOCAL_NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("LOCAL_NEO4J_USERNAME", "neo4j")

	cm, out := newTestManager(t, ModeInteractive, "typed-pass\n")
	target, err := cm.Resolve(TargetLocal)
	require.NoError(t, err)

	assert.Equal(t, "typed-pass", target.Password)
	assert.Contains(t, out.String(), "Password for neo4j@bolt://localhost:7687")
}

func TestResolve_MissingEverything(t *testing.T) {
	clearTargetEnv(t)

	cm, _ := newTestManager(t, ModeCI, "")
	_, err := cm.Resolve(TargetLocal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOCAL_NEO4J_URI")
}

func TestSaveCredentials_PasswordGoesToKeychain(t *testing.T) {
	clearTargetEnv(t)
	cm, _ := newTestManager(t, ModeInteractive, "")

	require.NoError(t, cm.SaveCredentials(Target{
		Name:     TargetRemote,
		URI:      "neo4j+s://remote.example.com",
		Username: "reader",
		Password: "kept-secret",
		Database: "neo4j",
	}))

	data, err := os.ReadFile(cm.credsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "neo4j+s://remote.example.com")
	assert.NotContains(t, string(data), "kept-secret")

	password, err := cm.keyring.GetPassword(TargetRemote)
	require.NoError(t, err)
	assert.Equal(t, "kept-secret", password)

	target, err := cm.Resolve(TargetRemote)
	require.NoError(t, err)
	assert.Equal(t, "kept-secret", target.Password)
}

func TestForget(t *testing.T) {
	clearTargetEnv(t)
	cm, _ := newTestManager(t, ModeInteractive, "")

	require.NoError(t, cm.Forget(TargetLocal), "nothing saved yet")

	require.NoError(t, cm.SaveCredentials(Target{
		Name:     TargetLocal,
		URI:      "bolt://localhost:7687",
		Username: "neo4j",
		Password: "local-pass",
		Database: "neo4j",
	}))
	require.NoError(t, cm.SaveCredentials(Target{
		Name:     TargetRemote,
		URI:      "neo4j+s://remote.example.com",
		Username: "reader",
		Password: "remote-pass",
		Database: "neo4j",
	}))

	require.NoError(t, cm.Forget(TargetLocal))

	password, err := cm.keyring.GetPassword(TargetLocal)
	require.NoError(t, err)
	assert.Empty(t, password)

	data, err := os.ReadFile(cm.credsPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bolt://localhost:7687")
	assert.Contains(t, string(data), "neo4j+s://remote.example.com", "other target is kept")
}

func TestSaveCredentials_CIModeKeepsPasswordInFile(t *testing.T) {
	clearTargetEnv(t)
	cm, _ := newTestManager(t, ModeCI, "")

	require.NoError(t, cm.SaveCredentials(Target{
		Name:     TargetRemote,
		URI:      "neo4j+s://remote.example.com",
		Username: "reader",
		Password: "file-secret",
	}))

	password, err := cm.keyring.GetPassword(TargetRemote)
	require.NoError(t, err)
	assert.Empty(t, password, "keychain is not read in CI mode, so nothing is written there")

	data, err := os.ReadFile(cm.credsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file-secret")

	target, err := cm.Resolve(TargetRemote)
	require.NoError(t, err)
	assert.Equal(t, "file-secret", target.Password)
}
