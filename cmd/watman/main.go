package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/watman/watman/internal/config"
	"github.com/watman/watman/internal/mcp"
	"github.com/watman/watman/internal/meta"
	"github.com/watman/watman/internal/server"
	"github.com/watman/watman/internal/tools"
)

const (
	serverName = "whatsapp-template-manager"
	version    = "1.0.0"
)

var rootCmd = &cobra.Command{
	Use:   "watman",
	Short: "watman — WhatsApp template manager for AI agents",
	Long:  "watman manages WhatsApp message templates on Meta and exposes the operations as tools an AI agent can call.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tools over MCP on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, _, err := buildRegistry()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Printf("watman: MCP server running on stdio")
		srv := mcp.NewServer(serverName, version, registry, os.Stdin, os.Stdout)
		return srv.Serve(ctx)
	},
}

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve the tools over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, cfg, err := buildRegistry()
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      server.NewRouter(registry),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			log.Printf("watman: listening on :%s", cfg.Port)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("server: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("watman: shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Println("watman: stopped")
		return nil
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, _, err := buildRegistry()
		if err != nil {
			return err
		}
		for _, t := range registry.List() {
			fmt.Printf("%s\n    %s\n", t.Name(), t.Description())
		}
		return nil
	},
}

func buildRegistry() (*tools.Registry, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	// The token is re-read from the environment on every remote call; the
	// config check above only fails fast at startup.
	client := meta.NewClient(cfg.GraphBaseURL, meta.EnvTokenSource{})
	return tools.BuildRegistry(client), cfg, nil
}

func main() {
	rootCmd.Version = version
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
	rootCmd.AddCommand(toolsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
