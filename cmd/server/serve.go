package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/18Abhinav07/SuavePay/internal/database"
	"github.com/18Abhinav07/SuavePay/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Errorw("failed to close database", "error", err)
		}
	}()

	gin.SetMode(cfg.GinMode)

	router := server.NewRouter(cfg, db, logger)
	defer router.Close()

	srv := server.NewHTTP(logger, router, cfg.Port, cfg.ShutdownTimeout)
	return run(srv)
}

func run(srv *server.HTTPServer) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	errChan := srv.Run()

	var err error
	select {
	case <-sig:
	case err = <-errChan:
	}

	sdErr := srv.Shutdown()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return sdErr
}
