package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	account "auction-house/internal/accountService"
	"auction-house/internal/server"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		router := server.SetupRouter(server.Dependencies{
			Auctions: services.Auctions,
			Accounts: services.Accounts,
			DB:       services.DB,
			Cookie:   sessionCookie(services.Accounts),
		})
		srv := server.New(cfg.Addr(), router, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

		// Start server in goroutine
		serverErr := make(chan error, 1)
		go func() {
			serverErr <- srv.Start()
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		utils.Info("Starting auction server", map[string]any{
			"addr":   srv.Addr(),
			"driver": string(services.DB.Dialect()),
			"config": cfg.ConfigPath,
		})

		select {
		case err := <-serverErr:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case sig := <-sigChan:
			utils.Info("Shutting down gracefully", map[string]any{"signal": sig.String()})
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		utils.Info("Server stopped", nil)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create any missing tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s)\n", services.DB.Dialect())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// sessionCookie lives exactly as long as the session tokens it carries
func sessionCookie(accounts *account.AccountService) helpers.SessionCookie {
	return helpers.SessionCookie{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.SecureCookie,
		TTL:    accounts.SessionTTL(),
	}
}
