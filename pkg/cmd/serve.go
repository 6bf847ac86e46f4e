package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/dal"
	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/server"
	"github.com/nekruzvatanshoev/easydrive/pkg/logging"
)

const shutdownTimeout = 5 * time.Second

var (
	ServeCmd = &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		RunE:  serveCmdFunc(),
	}
)

func init() {
	ServeCmd.Flags().String("address", ":8080", "listen address")
	viper.BindPFlag("server.address", ServeCmd.Flags().Lookup("address"))
	// an explicit --address still wins over both variables
	viper.BindEnv("server.address", envPrefix+"_SERVER_ADDRESS", "SERVER_ADDRESS")
}

func serverAddress() string {
	return viper.GetString("server.address")
}

func serveCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log := logging.Default()

		addr := serverAddress()
		catalog := dal.Generate(viper.GetInt("catalog.size"))
		images := dal.NewImageResolver(&http.Client{Timeout: viper.GetDuration("image.timeout")})
		serve := server.NewHTTPServer(addr, catalog, images, *log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", addr).Int("vehicles", catalog.Len()).Msg("serving catalog")
			errCh <- serve.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down the server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return serve.Shutdown(shutdownCtx)
	}
}
