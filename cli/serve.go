package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"csv-to-json/common"
	"csv-to-json/imports"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Serve conversions over HTTP.

Settings come from flags or CSV2JSON_* environment variables
(CSV2JSON_PORT or PORT, CSV2JSON_JWT_SECRET, CSV2JSON_DATABASE,
CSV2JSON_UPLOADS_DIR, CSV2JSON_MAX_UPLOAD_MB).`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	f := cmd.Flags()
	f.String("port", common.DefaultPort, "Port to listen on")
	f.String("jwt-secret", "", "HS256 secret required from API clients (auth disabled when empty)")
	f.String("database", "", "sqlite database for conversion history and API metrics")
	f.String("uploads-dir", common.DefaultUploadsDir, "Directory for uploaded CSV files while they convert")
	f.Int64("max-upload-mb", common.DefaultMaxUploadMB, "Maximum upload size in megabytes")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := common.LoadServerConfig(cmd.Flags())
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	var store *common.JobStore
	if cfg.Database != "" {
		db, err := common.OpenDatabase(cfg.Database)
		if err != nil {
			return err
		}
		defer common.CloseDatabase(db)
		store = common.NewJobStore(db)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: imports.NewRouter(cfg, store),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s...", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
