package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arcanaland/namecards/internal/config"
	"github.com/arcanaland/namecards/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web editor",
	Long: `Serve starts the web editor: paste or edit the card JSON, page through the
preview, print all pages, and copy a share link. Share links created here
point back at this server unless --base-url is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")
		baseURL, _ := cmd.Flags().GetString("base-url")
		debug, _ := cmd.Flags().GetBool("debug")

		if listen == "" {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			listen = cfg.Listen
		}

		zapConfig := zap.NewProductionConfig()
		if debug {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Options{BaseURL: baseURL, Logger: logger})
		return srv.ListenAndServe(ctx, listen)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "Address to listen on (defaults to listen from the config file)")
	serveCmd.Flags().String("base-url", "", "Public address used in share links")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging")
}
