package main

import (
	"context"
	"fmt"
	"os"

	echoapi "github.com/cumaze/registro-consorcio/apps/api/echo"
	"github.com/cumaze/registro-consorcio/core"
	"github.com/cumaze/registro-consorcio/core/academic"
	"github.com/cumaze/registro-consorcio/core/branding"
	logsvc "github.com/cumaze/registro-consorcio/services/logger"
	"github.com/cumaze/registro-consorcio/services/metrics"
	"github.com/cumaze/registro-consorcio/services/render"
	inmemdb "github.com/cumaze/registro-consorcio/storage/database/inmem"
	"github.com/cumaze/registro-consorcio/storage/prefs"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger, err := logsvc.New(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	validate, translator := core.NewValidator()
	check := academic.InitValidators(validate, translator)

	// one process holds one session
	db := inmemdb.Open()
	academicSvc := academic.NewService(inmemdb.NewRosterRepository(db), academic.NewImporter(logger, check), logger)
	brandingSvc := branding.NewService(inmemdb.NewAssetRepository(db), prefs.NewYAMLStore(conf.PrefsPath), conf, logger)

	renderer, err := render.NewRenderer()
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading fonts: %v", err), err)
	}

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Academic:   academicSvc,
			Branding:   brandingSvc,
			Exporter:   render.NewExporter(renderer),
			Metrics:    metrics.New(),
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
