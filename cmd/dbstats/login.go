package main

import (
	"fmt"

	"github.com/rohankatakam/dbstats/internal/config"
	"github.com/rohankatakam/dbstats/internal/graph"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify and remember credentials for a target",
	Long: `Resolve credentials for a target, verify them against the database and
save them for later runs.

The password is stored in the OS keychain when one is available and in
~/.config/dbstats/credentials.yaml (mode 0600) otherwise. If no password is
set in the environment you are prompted for it.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove saved credentials for a target",
	Long: `Delete a target's password from the OS keychain and its entry from the
credentials file. Environment variables are not affected.`,
	RunE: runLogout,
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := applyFlags(cmd); err != nil {
		return err
	}
	name, err := selectTarget(cmd)
	if err != nil {
		return err
	}

	cm := config.NewCredentialManager(cfg)
	target, err := cm.Resolve(name)
	if err != nil {
		return err
	}

	client, err := graph.NewClient(ctx, target, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("credentials were not saved: %w", err)
	}
	closeClient(client)

	if err := cm.SaveCredentials(target); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved credentials for %s\n", target)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := applyFlags(cmd); err != nil {
		return err
	}
	name, err := selectTarget(cmd)
	if err != nil {
		return err
	}

	if err := config.NewCredentialManager(cfg).Forget(name); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed saved credentials for %s\n", name.Label())
	return nil
}
