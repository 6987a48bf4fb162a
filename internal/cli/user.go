package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbourn/clip-qa-backend/internal/auth"
	"github.com/tbourn/clip-qa-backend/internal/domain"
	"github.com/tbourn/clip-qa-backend/internal/services"
	"github.com/tbourn/clip-qa-backend/internal/sysutil"
)

func newUserCmd(a *app) *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var (
		password string
		admin    bool
	)
	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account, or promote an existing one with --admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := domain.RoleUser
			if admin {
				role = domain.RoleAdmin
			}
			svc := services.NewAuthService(a.db, auth.NewTokens(a.cfg.Auth.Secret, a.cfg.Auth.TokenTTL))
			ctx := cmd.Context()
			name := args[0]

			u, err := svc.CreateUser(ctx, name, sysutil.FirstNonEmpty(password, os.Getenv("CLIPCTL_PASSWORD")), role)
			switch {
			case errors.Is(err, services.ErrUsernameTaken) && admin:
				if err := svc.Promote(ctx, name, role); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "promoted %s to %s\n", name, role)
				return nil
			case err != nil:
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(u)
		},
	}
	create.Flags().StringVarP(&password, "password", "p", "", "account password (default: $CLIPCTL_PASSWORD)")
	create.Flags().BoolVar(&admin, "admin", false, "grant the admin role")

	user.AddCommand(create)
	return user
}
