package cli

import (
	"fmt"
	"time"

	"subtrack/internal/app"
	"subtrack/internal/auth"
	"subtrack/internal/database"

	"github.com/spf13/cobra"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(opts.cfg)
		},
	}
}

func migrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.Open(opts.cfg)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("auto-migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Schema migrated"))
			return nil
		},
	}
}

func seedCmd(opts *rootOptions) *cobra.Command {
	var in app.SeedInput

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert organization membership and tags for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.Open(opts.cfg)
			if err != nil {
				return err
			}
			if in.OrganizationID == "" {
				in.OrganizationID = opts.organizationID
			}
			tags, err := app.Seed(db, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if in.OrganizationID != "" {
				fmt.Fprintf(out, "%s %s → %s\n", successStyle.Render("member"), in.UserID, in.OrganizationID)
			}
			for _, tag := range tags {
				fmt.Fprintf(out, "%s %s  %s\n", successStyle.Render("tag"), tag.ID, tag.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.UserID, "user", "", "user id (required)")
	cmd.Flags().StringVar(&in.OrganizationID, "org-id", "", "organization to add the user to (default: --org)")
	cmd.Flags().StringVar(&in.Role, "role", "member", "membership role")
	cmd.Flags().StringSliceVar(&in.Tags, "tags", nil, "tag names to create")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func tokenCmd(opts *rootOptions) *cobra.Command {
	var userID, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfg.JWT.Secret == "" {
				return auth.ErrMissingSecret
			}
			if err := auth.ValidateRole(role); err != nil {
				return err
			}
			tokens := auth.NewTokenManager(opts.cfg.JWT.Secret, opts.cfg.JWT.Issuer, time.Duration(opts.cfg.JWT.TTL)*time.Minute)
			token, err := tokens.Issue(userID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (required)")
	cmd.Flags().StringVar(&role, "role", auth.RoleUser, "role: user or admin")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
