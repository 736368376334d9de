package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/config"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/server"
)

var (
	flagTransport string
	flagConfig    string
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "shadcn-ui-mcp",
	Short: "MCP server for shadcn/ui documentation and sources",
	Long: "Exposes shadcn/ui components, demos, themes, and blocks to MCP clients\n" +
		"over a stdio pipe or an HTTP/SSE endpoint.\n\n" +
		"The SSE listen port comes from the PORT environment variable (default 3001).",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagDebug {
			logging.EnableDebugMode()
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		applyLogLevel(cfg.Logging.Level)

		srv, err := server.New(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Start(ctx, flagTransport)
	},
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		logging.SetGlobalLevel(logging.DEBUG)
	case "warn":
		logging.SetGlobalLevel(logging.WARN)
	case "error":
		logging.SetGlobalLevel(logging.ERROR)
	default:
		logging.SetGlobalLevel(logging.INFO)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagTransport, "transport", "t", server.TransportStdio,
		"transport mode: stdio or sse")
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "./configs/config.yaml",
		"path to the config file (optional)")
	rootCmd.Flags().BoolVarP(&flagDebug, "debug", "d", false,
		"enable debug logging")
}

func main() {
	// A missing .env file is fine; environment variables still apply
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		logging.ServerLogger.Fatal("server exited", logging.Error(err))
	}
}
