package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/game-catalog-service/internal/credentials"
)

var errNoCredentialCache = errors.New("no credential cache: set IGDB_CLIENT_ID and IGDB_CLIENT_SECRET with PROVIDER=igdb")

type tokenStatus struct {
	Cached    bool      `json:"cached"`
	Valid     bool      `json:"valid"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

func newTokenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect or clear the cached access token",
	}

	var refresh bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cached token and when it expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.catalog.Tokens == nil {
				return errNoCredentialCache
			}
			ctx := cmd.Context()
			if refresh {
				if _, err := a.catalog.Tokens.Token(ctx); err != nil {
					return err
				}
			}
			status := tokenStatus{}
			cred, err := a.catalog.Tokens.Current(ctx)
			switch {
			case errors.Is(err, credentials.ErrNoToken):
			case err != nil:
				return err
			default:
				status = tokenStatus{
					Cached:    true,
					Valid:     cred.Valid(time.Now()),
					Token:     maskToken(cred.Token),
					ExpiresAt: cred.ExpiresAt,
				}
			}

			if a.jsonOut {
				return writeJSON(a.out, status)
			}
			if !status.Cached {
				fmt.Fprintln(a.out, "No cached token.")
				return nil
			}
			fmt.Fprintf(a.out, "Token:   %s\n", status.Token)
			fmt.Fprintf(a.out, "Expires: %s (%s)\n", status.ExpiresAt.Format(time.RFC3339), humanize.Time(status.ExpiresAt))
			if status.Valid {
				fmt.Fprintln(a.out, "Status:  valid")
			} else {
				fmt.Fprintln(a.out, "Status:  expired, will refresh on next request")
			}
			return nil
		},
	}
	showCmd.Flags().BoolVar(&refresh, "refresh", false, "fetch a new token first when the cached one is not valid")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.catalog.Tokens == nil {
				return errNoCredentialCache
			}
			if err := a.catalog.Tokens.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Token cleared.")
			return nil
		},
	}

	cmd.AddCommand(showCmd, clearCmd)
	return cmd
}

// maskToken keeps the first and last four characters.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "…" + token[len(token)-4:]
}
