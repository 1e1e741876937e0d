package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rohankatakam/dbstats/internal/errors"
)

// TargetName identifies one of the two configured databases
type TargetName string

const (
	TargetLocal  TargetName = "local"
	TargetRemote TargetName = "remote"
)

// HomeDatabaseLabel is shown when a target names no database and the
// server's home database is used
const HomeDatabaseLabel = "(home database)"

// ParseTargetName accepts "local"/"remote" and the menu numbers "1"/"2"
func ParseTargetName(s string) (TargetName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "local":
		return TargetLocal, nil
	case "2", "remote":
		return TargetRemote, nil
	}
	return "", errors.ValidationErrorf("unknown target %q (expected local or remote)", s)
}

// envVars names the environment variables holding a target's credential triple
type envVars struct {
	URI      string
	Username string
	Password string
	Database string
}

func (n TargetName) envVars() envVars {
	if n == TargetLocal {
		return envVars{
			URI:      "LOCAL_NEO4J_URI",
			Username: "LOCAL_NEO4J_USERNAME",
			Password: "LOCAL_NEO4J_PASSWORD",
			Database: "LOCAL_NEO4J_DATABASE",
		}
	}
	return envVars{
		URI:      "NEO4J_URI",
		Username: "NEO4J_USERNAME",
		Password: "NEO4J_PASSWORD",
		Database: "NEO4J_DATABASE",
	}
}

// Label is the menu text for the target
func (n TargetName) Label() string {
	if n == TargetLocal {
		return "Local Database"
	}
	return "Remote Database"
}

// Target is a resolved connection target
type Target struct {
	Name     TargetName
	URI      string
	Username string
	Password string `yaml:"-"`
	Database string
}

// Validate checks that the credential triple is complete
func (t Target) Validate() error {
	vars := t.Name.envVars()
	var missing []string
	if t.URI == "" {
		missing = append(missing, vars.URI)
	}
	if t.Username == "" {
		missing = append(missing, vars.Username)
	}
	if t.Password == "" {
		missing = append(missing, vars.Password)
	}
	if len(missing) > 0 {
		return errors.ConfigErrorf("%s target is missing %s", t.Name, strings.Join(missing, ", "))
	}

	u, err := url.Parse(t.URI)
	if err != nil {
		return errors.ConfigErrorf("%s is not a valid URI: %v", vars.URI, err)
	}
	if !boltSchemes[u.Scheme] {
		return errors.ConfigErrorf("%s has unsupported scheme %q (expected neo4j or bolt)", vars.URI, u.Scheme)
	}
	return nil
}

// boltSchemes are the URI schemes the driver accepts
var boltSchemes = map[string]bool{
	"neo4j":     true,
	"neo4j+s":   true,
	"neo4j+ssc": true,
	"bolt":      true,
	"bolt+s":    true,
	"bolt+ssc":  true,
}

// DatabaseLabel is the database name for display
func (t Target) DatabaseLabel() string {
	if t.Database == "" {
		return HomeDatabaseLabel
	}
	return t.Database
}

// String never includes the password
func (t Target) String() string {
	return fmt.Sprintf("%s (%s as %s, database %s)", t.Name, t.URI, t.Username, t.DatabaseLabel())
}
