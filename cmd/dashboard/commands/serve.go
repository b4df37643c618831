package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/cloud"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/dashboard"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/database"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/messaging"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/observability"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/repository"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/server"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/service"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = config.HTTPAddr()
			}
			return serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :3000)")
	return cmd
}

func serve(ctx context.Context, addr string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	store := dashboard.NewStore(dashboard.NewLoader(client), dashboard.WithObserver(metrics))

	sinks, history, cleanup, err := buildSinks(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	svcs := service.New(10*time.Second, sinks...)
	store.Subscribe(func(s *dashboard.Snapshot) { svcs.Dispatch(ctx, s) })

	srv := server.New(server.Options{
		Store:    store,
		Health:   client,
		History:  history,
		Metrics:  metrics,
		Location: config.DisplayLocation(),
	})

	// The dashboard is populated exactly once, when it starts.
	go store.Refresh(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(addr) }()
	log.Info().
		Str("addr", addr).
		Str("api", client.BaseURL()).
		Strs("sinks", svcs.Enabled()).
		Msg("dashboard listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// buildSinks wires the optional snapshot consumers enabled in config.
func buildSinks(ctx context.Context) ([]service.Sink, server.HistoryReader, func(), error) {
	var (
		sinks   []service.Sink
		history server.HistoryReader
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if config.ArchiveEnabled() {
		db, err := database.Connect(config.DBDSN())
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("db connect failed: %w", err)
		}
		closers = append(closers, func() { db.Close() })

		repo := repository.New(db)
		if err := repo.Migrate(ctx); err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("db migrate failed: %w", err)
		}
		sinks = append(sinks, service.NewArchiveSink(repo))
		history = repo
	}

	if config.MQTTEnabled() {
		host, _ := os.Hostname()
		pub, err := messaging.Connect(config.MQTTBroker(), "energy-dashboard-"+host, config.MQTTTopic())
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		closers = append(closers, pub.Close)
		sinks = append(sinks, service.NewPublishSink(pub))
	}

	if config.UseCloudServices() {
		s3c, err := cloud.NewS3Client(ctx, config.AWSRegion(), config.S3Bucket())
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		sinks = append(sinks, service.NewExportSink(s3c))

		if arn := config.SNSTopicArn(); arn != "" {
			snsc, err := cloud.NewSNSClient(ctx, config.AWSRegion(), arn)
			if err != nil {
				cleanup()
				return nil, nil, nil, err
			}
			sinks = append(sinks, service.NewRegressionSink(snsc))
		}
	}

	return sinks, history, cleanup, nil
}
