package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohankatakam/dbstats/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
target: remote
database: analytics
query_timeout: 45s
relationship_grouping: local
output: json
log:
  level: debug
  json: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "remote", cfg.Target)
	assert.Equal(t, "analytics", cfg.Database)
	assert.Equal(t, 45*time.Second, cfg.QueryTimeout)
	assert.Equal(t, GroupLocally, cfg.RelationshipGrouping)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Target)
	assert.Empty(t, cfg.Database, "server home database")
	assert.Zero(t, cfg.QueryTimeout)
	assert.Equal(t, GroupInDatabase, cfg.RelationshipGrouping)
	assert.Equal(t, "grid", cfg.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "relationship_grouping: database\n")
	t.Setenv("DBSTATS_RELATIONSHIP_GROUPING", "local")
	t.Setenv("DBSTATS_LOG_LEVEL", "info")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, GroupLocally, cfg.RelationshipGrouping)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_InvalidGrouping(t *testing.T) {
	_, err := Load(writeConfig(t, "relationship_grouping: sideways\n"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrConfig))
}

func TestLoad_InvalidTarget(t *testing.T) {
	_, err := Load(writeConfig(t, "target: staging\n"))
	require.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseTargetName(t *testing.T) {
	tests := []struct {
		in   string
		want TargetName
		ok   bool
	}{
		{"1", TargetLocal, true},
		{"local", TargetLocal, true},
		{" Remote ", TargetRemote, true},
		{"2", TargetRemote, true},
		{"3", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTargetName(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTarget_Validate(t *testing.T) {
	valid := Target{Name: TargetRemote, URI: "neo4j+s://db.example.com", Username: "neo4j", Password: "secret"}
	assert.NoError(t, valid.Validate())

	missing := Target{Name: TargetLocal, URI: "bolt://localhost:7687"}
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOCAL_NEO4J_USERNAME")
	assert.Contains(t, err.Error(), "LOCAL_NEO4J_PASSWORD")
	assert.NotContains(t, err.Error(), "LOCAL_NEO4J_URI")

	badScheme := valid
	badScheme.URI = "http://db.example.com:7474"
	assert.Error(t, badScheme.Validate())
}

func TestTarget_StringHidesPassword(t *testing.T) {
	target := Target{Name: TargetLocal, URI: "bolt://localhost:7687", Username: "neo4j", Password: "hunter2", Database: "neo4j"}
	assert.NotContains(t, target.String(), "hunter2")
}

func TestTarget_DatabaseLabel(t *testing.T) {
	assert.Equal(t, HomeDatabaseLabel, Target{}.DatabaseLabel())
	assert.Equal(t, "movies", Target{Database: "movies"}.DatabaseLabel())
	assert.Contains(t, Target{Name: TargetRemote}.String(), "database (home database)")
}
