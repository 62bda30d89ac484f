package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/config"
	"github.com/abhisek/mathforest/internal/store"
)

// withClient opens the store and the auth client for an account command.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, client *auth.Client, st *store.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	client, err := newClient(ctx, cfg, st, stderrLogger())
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}
	return fn(ctx, cfg, client, st)
}

// credentials returns the email argument and the password from --password
// or the first line of stdin.
func credentials(cmd *cobra.Command, args []string) (string, string, error) {
	email := args[0]
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return email, password, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("read password: %w", err)
	}
	return email, strings.TrimRight(line, "\r\n"), nil
}

var signupCmd = &cobra.Command{
	Use:   "signup EMAIL",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(cmd, args)
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, _ config.Config, client *auth.Client, _ *store.Store) error {
			res, s, err := client.SignUp(ctx, email, password)
			if err != nil {
				return errors.New(auth.UserMessage(err))
			}
			out := cmd.OutOrStdout()
			switch res {
			case auth.SignedIn:
				fmt.Fprintln(out, "Welcome to Math Forest! Signed in as", s.Email)
			case auth.AlreadyRegistered:
				fmt.Fprintln(out, "That email already has an account. Try `mathforest login`.")
			case auth.ConfirmationSent:
				fmt.Fprintln(out, "Check your email for a confirmation link.")
			}
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(cmd, args)
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, _ config.Config, client *auth.Client, _ *store.Store) error {
			s, err := client.SignInWithPassword(ctx, email, password)
			if err != nil {
				return errors.New(auth.UserMessage(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed in as", s.Email)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, _ config.Config, client *auth.Client, _ *store.Store) error {
			if err := client.SignOut(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, _ config.Config, client *auth.Client, _ *store.Store) error {
			s, err := client.CurrentSession(ctx)
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in (playing as guest).")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (expires %s)\n", s.Email, s.ExpiresAt.Local().Format("2006-01-02"))
			return nil
		})
	},
}

func init() {
	signupCmd.Flags().String("password", "", "Password (read from stdin when empty)")
	loginCmd.Flags().String("password", "", "Password (read from stdin when empty)")
}
