// Package main is the entry point for the pingsocial server binary.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pingsocial/internal/app"
	"pingsocial/internal/config"
	internaldb "pingsocial/internal/db"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// cliState is shared by every subcommand once PersistentPreRunE has run.
type cliState struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	var envFile string
	rt := &cliState{}

	rootCmd := &cobra.Command{
		Use:           "pingsocial",
		Short:         "Social graph and feed server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = newLogger(cfg)
			for _, w := range cfg.Warnings {
				rt.logger.Warn(w)
			}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				rt.logger.Debug("flag set", "command", cmd.Name(), "flag", f.Name, "value", f.Value.String())
			})
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")

	rootCmd.AddCommand(
		newServeCmd(rt),
		newMigrateCmd(rt),
		newSeedTribesCmd(rt),
		newUserCmd(rt),
	)
	return rootCmd
}

// newLogger returns a JSON logger in production and a text logger otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openApp opens the pools, applies migrations and wires the application.
// The returned closer releases the pools.
func (rt *cliState) openApp(ctx context.Context) (*app.App, func(), error) {
	pools, err := internaldb.OpenPools(rt.cfg.DBPath, rt.cfg.ReadPoolSize)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := pools.Close(); err != nil {
			rt.logger.Warn("close database", "error", err)
		}
	}

	if err := internaldb.RunMigrations(ctx, pools.Write); err != nil {
		closer()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	a, err := app.New(ctx, app.Deps{
		Cfg:     rt.cfg,
		WriteDB: pools.Write,
		ReadDB:  pools.Read,
		Logger:  rt.logger,
	})
	if err != nil {
		closer()
		return nil, nil, err
	}
	return a, closer, nil
}

func newServeCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, rt)
		},
	}
}

func serve(ctx context.Context, rt *cliState) error {
	a, closeDB, err := rt.openApp(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := a.Retention.Start(ctx); err != nil {
		return err
	}
	defer a.Retention.Stop()

	srv := &http.Server{
		Addr:              rt.cfg.ListenAddr,
		Handler:           a.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("HTTP API listening", "addr", rt.cfg.ListenAddr)
		rt.logger.Info(fmt.Sprintf("Try: curl -H 'Authorization: Bearer <jwt>' http://%s/v1/feed", curlHostForListenAddr(rt.cfg.ListenAddr)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down", "timeout", rt.cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// curlHostForListenAddr turns a listen address into a host:port usable in a
// curl hint. Wildcard and empty hosts become localhost.
func curlHostForListenAddr(listenAddr string) string {
	addr := strings.TrimSpace(listenAddr)
	if addr == "" {
		return "localhost:8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
