package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/frontdesk/internal/auth"
	"github.com/iliyamo/frontdesk/internal/database"
	"github.com/iliyamo/frontdesk/internal/repository"
	"github.com/iliyamo/frontdesk/internal/utils"
)

func newUserCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}
	root.AddCommand(newUserHashCmd(), newUserAddCmd())
	return root
}

func newUserHashCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash PASSWORD",
		Short: "Print a bcrypt hash for the users file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", utils.DefaultCost, "bcrypt cost")
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var username, name, password, role string
	var cost int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a staff account in MySQL (DB_* variables)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !auth.KnownRole(role) {
				return fmt.Errorf("unknown role %q, expected one of %v", role, auth.Roles)
			}
			if password == "" {
				return errors.New("--password is required")
			}
			if os.Getenv("DB_USER") == "" || os.Getenv("DB_NAME") == "" {
				return errors.New("DB_USER and DB_NAME must be set")
			}
			db, err := database.Open(os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
				envOr("DB_HOST", "127.0.0.1"), envOr("DB_PORT", "3306"), os.Getenv("DB_NAME"))
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			id, err := repository.NewUserRepo(db).Create(cmd.Context(), username, name, password, role, cost)
			if errors.Is(err, repository.ErrUsernameExists) {
				return fmt.Errorf("username %q is taken", username)
			}
			if err != nil {
				return err
			}
			good.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", id, username, role)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&username, "username", "", "login name")
	f.StringVar(&name, "name", "", "display name")
	f.StringVar(&password, "password", "", "initial password")
	f.StringVar(&role, "role", auth.RoleFrontDesk, "role")
	f.IntVar(&cost, "cost", utils.DefaultCost, "bcrypt cost")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
