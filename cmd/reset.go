package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/config"
	"github.com/abhisek/mathforest/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Reset clears the name, every skill level, stars, potions, badges and the dragon defeat for the signed-in learner (or the guest).",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		log := stderrLogger()
		return withClient(cmd, func(ctx context.Context, cfg config.Config, client *auth.Client, st *store.Store) error {
			id, who := currentIdentity(ctx, client)
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "Erase all progress for %s? Type \"yes\" to confirm: ", who)
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.TrimSpace(strings.ToLower(line)) != "yes" {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			g := openGame(ctx, st, id, gameOptions(cfg, log, nil))
			defer g.Close(ctx)
			if err := g.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Progress reset.")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
