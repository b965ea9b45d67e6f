package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/cardgame-go/internal/api"
	"github.com/mcoot/cardgame-go/internal/factory"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the status API server",
		Long: `serve runs the read-only status API over the session registry until
interrupted. Sessions are started through a chat transport; with none
attached the registry serves as empty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(factory.Config{})
			if err != nil {
				return err
			}
			logger := buildLogger()

			serverCfg := api.DefaultServerConfig()
			serverCfg.Port = port
			server := api.NewServer(api.NewRouter(api.RouterConfig{
				Logger:     logger,
				Dispatcher: app.Dispatcher,
			}), serverCfg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			return server.Shutdown(context.Background())
		},
	}

	cmd.Flags().IntVar(&port, "port", api.DefaultServerConfig().Port, "Port for the status API")
	return cmd
}
