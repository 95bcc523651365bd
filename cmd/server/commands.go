package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	internaldb "pingsocial/internal/db"
	"pingsocial/internal/domain"
)

func newMigrateCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pools, err := internaldb.OpenPools(rt.cfg.DBPath, rt.cfg.ReadPoolSize)
			if err != nil {
				return err
			}
			defer pools.Close() //nolint:errcheck

			if err := internaldb.RunMigrations(ctx, pools.Write); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			v, err := internaldb.SchemaVersion(ctx, pools.Read)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
			return nil
		},
	}
}

func newSeedTribesCmd(rt *cliState) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-tribes",
		Short: "Create any missing tribes from the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("file") {
				rt.cfg.TribesFile = file
			}
			a, closeDB, err := rt.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			tribes, err := a.Services.Tribe.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tribes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d members\n", t.ID, t.Name, t.MemberCount)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML tribe catalogue (overrides TRIBES_FILE)")
	return cmd
}

func newUserCmd(rt *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users in the identity store",
	}
	cmd.AddCommand(newUserAddCmd(rt))
	return cmd
}

func newUserAddCmd(rt *cliState) *cobra.Command {
	var (
		email    string
		name     string
		tokenTTL time.Duration
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user and print a bearer token for it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, closeDB, err := rt.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			u, err := a.Services.Profile.Register(cmd.Context(), domain.CreateUserRequest{
				Email:       email,
				DisplayName: name,
				Active:      true,
			})
			if err != nil {
				return err
			}
			tok, err := a.Validator.Sign(u.ID, tokenTTL)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "id:    %s\n", u.ID)
			_, _ = fmt.Fprintf(out, "token: %s\n", tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "lifetime of the printed token")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
