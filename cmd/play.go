package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathforest/internal/app"
	"github.com/abhisek/mathforest/internal/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("skip-intro", false, "Skip the welcome animation")
}

// runPlay opens the store and auth client and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := fileLogger()
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := newClient(ctx, cfg, st, log)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	gopts := gameOptions(cfg, log, nil)
	skip, _ := cmd.Flags().GetBool("skip-intro")
	return app.Run(app.Options{
		Provider: client,
		OpenGame: func(ctx context.Context, id string) (*game.Game, error) {
			g := game.New(st, id, gopts)
			if err := g.Load(ctx); err != nil {
				log.Warn("load failed, starting fresh", "profile", id, "error", err)
			}
			return g, nil
		},
		SkipWelcome: skip,
	})
}
