// file: cmd/serve.go
// version: 1.1.0
// guid: 1e2f3a4b-5c6d-7e8f-9a0b-1c2d3e4f5a6b

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lmorel/bibsearch/internal/logging"
	"github.com/lmorel/bibsearch/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP search API",
	Long: `Start the HTTP server exposing search, cache and metrics endpoints.
The cache lives in this process, so searches from the API and from the
cache subcommands see the same entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log := setup()

		if cfg.LogLevel == "debug" || cfg.LogLevel == "trace" {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		svc, err := newService(cfg, log)
		if err != nil {
			return err
		}

		// Pick up log level edits without a restart.
		viper.OnConfigChange(func(e fsnotify.Event) {
			level := viper.GetString("log_level")
			logging.SetLevel(level)
			log.Info().Str("file", e.Name).Str("log_level", level).Msg("configuration reloaded")
		})
		if viper.ConfigFileUsed() != "" {
			viper.WatchConfig()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info().Str("strategy", svc.StrategyName()).Msg("starting bibsearch server")
		return server.New(cfg.Server, svc, log).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "host to bind the server to")
	serveCmd.Flags().Int("port", 8080, "port to listen on")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
