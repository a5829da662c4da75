package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"docscript/config"
	"docscript/internal/client"
	"docscript/internal/infrastructure/database"
	"docscript/internal/repository"
	"docscript/internal/usecase"
	"docscript/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://127.0.0.1:4001"

// NewRootCommand wires the server, admin and client subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "docscript",
		Short:        "Clinic prescription manager",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(promoteAdminCmd())
	rootCmd.AddCommand(clientCmds()...)

	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := New(cmd.Context())
			if err != nil {
				return err
			}
			return app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	loadDB := func() (config.DBConfig, error) {
		setupLogger()
		cfg, err := config.LoadConfig()
		if err != nil {
			return config.DBConfig{}, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg.DB, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadDB()
			if err != nil {
				return err
			}
			return database.MigrateUp(db)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadDB()
			if err != nil {
				return err
			}
			return database.MigrateDown(db)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadDB()
			if err != nil {
				return err
			}
			version, dirty, err := database.MigrationVersion(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
			return nil
		},
	})

	return cmd
}

func promoteAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote-admin <email>",
		Short: "Make an existing user an approved admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newBaseApp()
			if err != nil {
				return err
			}
			defer app.Close()

			users := usecase.NewUserUsecase(logrus.StandardLogger(), repository.NewUserRepository(app.DB), jwt.NewJWTService(app.Config.JWT), uuid.Nil)
			return runPromote(cmd, users, args[0])
		},
	}
}

func runPromote(cmd *cobra.Command, users usecase.UserUsecase, email string) error {
	outcome, user, err := users.PromoteByEmail(cmd.Context(), email)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			return fmt.Errorf("user not found: %s", email)
		}
		return fmt.Errorf("failed to promote user: %w", err)
	}

	out := cmd.OutOrStdout()
	switch outcome {
	case usecase.PromoteUnchanged:
		fmt.Fprintf(out, "User is already ADMIN and approved: %s\n", user.Email)
	case usecase.PromoteApproved:
		fmt.Fprintf(out, "User was ADMIN; set approved=true for: %s\n", user.Email)
	case usecase.PromotePromoted:
		fmt.Fprintf(out, "Promoted user to ADMIN (approved): %s id: %s\n", user.Email, user.ID)
	}
	return nil
}

type clientOptions struct {
	apiURL      string
	sessionPath string
}

func (o *clientOptions) newClient() (*client.Client, error) {
	return client.New(o.apiURL, client.NewSessionStore(o.sessionPath), logrus.StandardLogger())
}

func clientCmds() []*cobra.Command {
	opts := &clientOptions{}
	apiURL := os.Getenv("DOCSCRIPT_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	bindFlags := func(cmd *cobra.Command) *cobra.Command {
		cmd.Flags().StringVar(&opts.apiURL, "api", apiURL, "Base URL of the DocScript API")
		cmd.Flags().StringVar(&opts.sessionPath, "session", client.DefaultSessionPath(), "Path of the saved session file")
		return cmd
	}

	login := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			wait, _ := cmd.Flags().GetBool("wait")
			interval, _ := cmd.Flags().GetDuration("interval")

			c, err := opts.newClient()
			if err != nil {
				return err
			}
			session, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged in as %s (%s)\n", session.User.Email, session.User.Role)
			if session.User.Approved {
				return nil
			}

			fmt.Fprintln(out, client.PendingApprovalNotice)
			if !wait {
				return nil
			}
			fmt.Fprintln(out, "Waiting for approval...")
			if _, err := c.WaitForApproval(cmd.Context(), interval); err != nil {
				return err
			}
			fmt.Fprintln(out, "Account approved")
			return nil
		},
	}
	login.Flags().String("email", "", "Account email")
	login.Flags().String("password", "", "Account password")
	login.Flags().Bool("wait", false, "Keep polling until the account is approved")
	login.Flags().Duration("interval", client.DefaultPollInterval, "Approval poll interval")
	login.MarkFlagRequired("email")
	login.MarkFlagRequired("password")

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			user, err := c.Me(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s role=%s approved=%t\n", user.Email, user.Role, user.Approved)
			return nil
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and forget the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}

	return []*cobra.Command{bindFlags(login), bindFlags(whoami), bindFlags(logout)}
}
