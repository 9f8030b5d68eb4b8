package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deskline-lab/vaani/pkg/adapter/storage"
	"github.com/deskline-lab/vaani/pkg/cli/config"
	server "github.com/deskline-lab/vaani/pkg/controller/http"
	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/repository/memory"
	"github.com/deskline-lab/vaani/pkg/service/catalog"
	"github.com/deskline-lab/vaani/pkg/service/intent"
	"github.com/deskline-lab/vaani/pkg/service/sessionstore"
	storageService "github.com/deskline-lab/vaani/pkg/service/storage"
	"github.com/deskline-lab/vaani/pkg/usecase"
	"github.com/deskline-lab/vaani/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		addr              string
		contextWindow     int
		intentTimeout     time.Duration
		reaperInterval    time.Duration
		idleThreshold     time.Duration
		artifactRetention time.Duration

		sentryCfg    config.Sentry
		llmCfg       config.LLMCfg
		firestoreCfg config.Firestore
		storageCfg   config.Storage
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("VAANI_ADDR"),
				Usage:       "Listen address (default: 127.0.0.1:8080)",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.IntFlag{
				Name:        "context-window",
				Usage:       "Number of transcript entries passed to the intent resolver",
				Category:    "Dialog",
				Sources:     cli.EnvVars("VAANI_CONTEXT_WINDOW"),
				Value:       8,
				Destination: &contextWindow,
			},
			&cli.DurationFlag{
				Name:        "intent-timeout",
				Usage:       "Deadline for one LLM intent resolution",
				Category:    "Dialog",
				Sources:     cli.EnvVars("VAANI_INTENT_TIMEOUT"),
				Value:       5 * time.Second,
				Destination: &intentTimeout,
			},
			&cli.DurationFlag{
				Name:        "reaper-interval",
				Usage:       "Interval between reaper sweeps",
				Category:    "Reaper",
				Sources:     cli.EnvVars("VAANI_REAPER_INTERVAL"),
				Value:       time.Minute,
				Destination: &reaperInterval,
			},
			&cli.DurationFlag{
				Name:        "idle-threshold",
				Usage:       "Inactivity period after which an active session is abandoned",
				Category:    "Reaper",
				Sources:     cli.EnvVars("VAANI_IDLE_THRESHOLD"),
				Value:       15 * time.Minute,
				Destination: &idleThreshold,
			},
			&cli.DurationFlag{
				Name:        "artifact-retention",
				Usage:       "Retention period for audio artifacts",
				Category:    "Reaper",
				Sources:     cli.EnvVars("VAANI_ARTIFACT_RETENTION"),
				Value:       24 * time.Hour,
				Destination: &artifactRetention,
			},
		},
		sentryCfg.Flags(),
		llmCfg.Flags(),
		firestoreCfg.Flags(),
		storageCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the dialog engine server",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := logging.From(ctx)
			logger.Info("starting server",
				"addr", addr,
				"context_window", contextWindow,
				"intent_timeout", intentTimeout,
				"reaper_interval", reaperInterval,
				"idle_threshold", idleThreshold,
				"artifact_retention", artifactRetention,
				"sentry", sentryCfg,
				"llm", llmCfg,
				"firestore", firestoreCfg,
				"storage", storageCfg,
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			var repo interfaces.Repository
			if firestoreCfg.IsConfigured() {
				fs, err := firestoreCfg.Configure(ctx)
				if err != nil {
					return err
				}
				defer func() {
					if err := fs.Close(); err != nil {
						logger.Warn("failed to close firestore client", logging.ErrAttr(err))
					}
				}()
				repo = fs
			} else {
				logger.Warn("Firestore is not configured, sessions are kept in memory")
				repo = memory.New()
			}

			var storageClient interfaces.StorageClient
			if storageCfg.IsConfigured() {
				client, err := storageCfg.Configure(ctx)
				if err != nil {
					return err
				}
				storageClient = client
			} else {
				logger.Warn("Storage bucket is not configured, audio artifacts are kept in memory")
				storageClient = storage.NewMemoryClient()
			}
			defer storageClient.Close(ctx)

			resolverOpts := []intent.Option{
				intent.WithTimeout(intentTimeout),
			}
			var primary interfaces.IntentResolver
			if llmCfg.IsConfigured() {
				llmClient, err := llmCfg.Configure(ctx)
				if err != nil {
					return err
				}
				primary = intent.NewLLM(llmClient)
			} else {
				logger.Warn("No LLM backend is configured, intent resolution is rule-based only")
			}

			cat, err := catalog.Default()
			if err != nil {
				return err
			}

			uc := usecase.New(
				sessionstore.New(repo),
				cat,
				usecase.WithResolver(intent.New(primary, resolverOpts...)),
				usecase.WithStorageService(storageService.New(storageClient)),
				usecase.WithContextWindow(int(contextWindow)),
				usecase.WithIdleThreshold(idleThreshold),
				usecase.WithArtifactRetention(artifactRetention),
			)

			reaperCtx, stopReaper := context.WithCancel(ctx)
			defer stopReaper()
			go uc.RunReaper(reaperCtx, reaperInterval)

			httpServer := http.Server{
				Addr:              addr,
				Handler:           server.New(uc),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("shutting down", "signal", sig.String())
				stopReaper()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}
}
