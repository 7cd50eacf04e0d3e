package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/union-tracker/internal/config"
	"github.com/union-tracker/internal/pkg/auth"
)

var (
	tokenAdmin bool
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token",
	Long: `Mint a token for the guest identity. By default it opens the read
routes; with --admin it is signed with the elevated secret and opens the
write routes instead.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().BoolVar(&tokenAdmin, "admin", false, "Sign with the elevated secret")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default JWT_EXPIRE_DAYS)")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	secret := cfg.Auth.Secret
	if tokenAdmin {
		secret = cfg.Auth.AdminSecret
	}
	ttl := cfg.Auth.TokenTTL
	if tokenTTL > 0 {
		ttl = tokenTTL
	}

	token, err := auth.NewTokenService().Issue(auth.GuestUser, secret, ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
