package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterkit/rostersync"
	"github.com/rosterkit/rostersync/pkg/manifest"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand(app App) *cobra.Command {
	var (
		dryRun       bool
		manifestPath string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch channel members and merge them into the store",
		Long: `Sync lists the members of the configured channel, fetches and parses
each member's identity, merges the result with the rows already stored,
and writes the merged roster back. Members that fail to fetch or parse
are skipped and reported; they do not fail the run.

With --manifest, several channel-to-table pairs are synced sequentially
in one invocation.`,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := app.Config()
			if dryRun {
				cfg.DryRun = true
			}
			if manifestPath != "" {
				cfg.Manifest = manifestPath
			}

			if cfg.Manifest != "" {
				return syncManifest(c.Context(), c, cfg)
			}
			return syncOne(c.Context(), c, cfg, cfg.Channel, cfg.Table)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "fetch and merge but skip the write")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "YAML manifest of channel-to-table pairs to sync")

	return cmd
}

// syncManifest runs one reconciliation per manifest scope, sequentially.
// A failing scope aborts the remaining ones.
func syncManifest(ctx context.Context, c *cobra.Command, cfg *Config) error {
	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return err
	}

	for _, scope := range m.Scopes {
		if err := syncOne(ctx, c, cfg, scope.Channel, scope.Table); err != nil {
			return fmt.Errorf("scope %s: %w", scope.Channel, err)
		}
	}
	return nil
}

// syncOne runs a single reconciliation for one channel and table.
func syncOne(ctx context.Context, c *cobra.Command, cfg *Config, channel, table string) error {
	opts := []rostersync.Option{
		rostersync.WithToken(cfg.Token),
		rostersync.WithScope(channel),
		rostersync.WithStoreLocation(cfg.Store),
		rostersync.WithDryRun(cfg.DryRun),
	}
	if table != "" {
		opts = append(opts, rostersync.WithTable(table))
	}

	client, err := rostersync.New(opts...)
	if err != nil {
		return err
	}

	result, err := client.Sync(ctx)
	if err != nil {
		return err
	}

	c.Println(result.Summary())
	for _, failure := range result.Failures {
		c.Printf("  skipped %s: %v\n", failure.MemberID, failure.Err)
	}
	return nil
}
