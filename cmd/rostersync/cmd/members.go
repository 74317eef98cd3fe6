package cmd

import (
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rosterkit/rostersync"
)

// NewMembersCommand creates the members command.
func NewMembersCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List the members currently persisted in the store",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := app.Config()

			opts := []rostersync.Option{
				rostersync.WithStoreLocation(cfg.Store),
			}
			if cfg.Table != "" {
				opts = append(opts, rostersync.WithTable(cfg.Table))
			}

			client, err := rostersync.New(opts...)
			if err != nil {
				return err
			}

			members, err := client.Members(c.Context())
			if err != nil {
				return err
			}

			// Locale-aware ordering by display name.
			collator := collate.New(language.English)
			sort.SliceStable(members, func(i, j int) bool {
				return collator.CompareString(
					members[i].Identity.DisplayName,
					members[j].Identity.DisplayName,
				) < 0
			})

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			if _, err := w.Write([]byte("MEMBER ID\tSHORT ID\tDISPLAY NAME\n")); err != nil {
				return err
			}
			for _, m := range members {
				if _, err := w.Write([]byte(m.ID + "\t" + m.Identity.ShortID + "\t" + m.Identity.DisplayName + "\n")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
