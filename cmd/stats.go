package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/config"
	"github.com/abhisek/mathforest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := stderrLogger()
		return withClient(cmd, func(ctx context.Context, cfg config.Config, client *auth.Client, st *store.Store) error {
			id, who := currentIdentity(ctx, client)
			g := openGame(ctx, st, id, gameOptions(cfg, log, nil))
			defer g.Close(ctx)
			v := g.Home()

			out := cmd.OutOrStdout()
			name := v.Name
			if name == "" {
				name = "(no name yet)"
			}
			fmt.Fprintf(out, "%s  %s %s  [%s]\n\n", name, v.Rank.Icon, v.Rank.Title, who)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SKILL\tLEVEL\tXP")
			for _, c := range v.Skills {
				switch {
				case c.Locked:
					fmt.Fprintf(tw, "%s %s\tlocked\t-\n", c.Icon, c.Name)
				case c.Level >= c.MaxLevel:
					fmt.Fprintf(tw, "%s %s\t%d/%d\tMAX\n", c.Icon, c.Name, c.Level, c.MaxLevel)
				default:
					fmt.Fprintf(tw, "%s %s\t%d/%d\t%d/%d\n", c.Icon, c.Name, c.Level, c.MaxLevel, c.XP, c.XPNeeded)
				}
			}
			tw.Flush()

			dragon := "asleep"
			switch {
			case v.BossDefeated:
				dragon = "defeated"
			case v.BossAvailable:
				dragon = "awake"
			}
			fmt.Fprintf(out, "\nTotal level %d · ⭐ %d stars · 🧪 %d potions · best streak %d\n",
				v.TotalLevel, v.TotalStars, v.Potions, v.BestStreak)
			fmt.Fprintf(out, "🏅 %d badges · 🏆 %d prizes · 🐉 dragon %s\n", len(v.Badges), v.Prizes, dragon)
			return nil
		})
	},
}
