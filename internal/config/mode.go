package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// DeploymentMode represents the execution context
type DeploymentMode string

const (
	// ModeInteractive is an operator at a terminal. The keychain and the
	// password prompt are allowed.
	ModeInteractive DeploymentMode = "interactive"

	// ModeCI is a pipeline or piped stdin: credentials come from the
	// environment and config files only.
	ModeCI DeploymentMode = "ci"
)

// DetectMode determines the execution context based on environment
func DetectMode() DeploymentMode {
	if mode := os.Getenv("DBSTATS_MODE"); mode != "" {
		switch strings.ToLower(mode) {
		case "interactive", "tty":
			return ModeInteractive
		case "ci", "cicd", "batch":
			return ModeCI
		}
	}

	if isCI() {
		return ModeCI
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeCI
	}

	return ModeInteractive
}

// isCI detects if running in a CI/CD environment
func isCI() bool {
	ciEnvVars := []string{
		"CI",
		"CONTINUOUS_INTEGRATION",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"JENKINS_URL",
		"BUILDKITE",
		"TF_BUILD",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}

	return false
}

// String returns the string representation of the mode
func (m DeploymentMode) String() string {
	return string(m)
}

// AllowsInteractivePrompts returns true if prompts on stdin are allowed
func (m DeploymentMode) AllowsInteractivePrompts() bool {
	return m == ModeInteractive
}

// AllowsKeychain returns true if the OS keychain should be consulted
func (m DeploymentMode) AllowsKeychain() bool {
	return m == ModeInteractive
}
