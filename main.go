package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/oldgods/nmibot/internal/domain/roster"
	"github.com/oldgods/nmibot/internal/domain/secrets"
	"github.com/oldgods/nmibot/internal/gateways/database"
	"github.com/oldgods/nmibot/internal/gateways/database/repositories"
	"github.com/oldgods/nmibot/internal/gateways/documents"
	"github.com/oldgods/nmibot/internal/gateways/platform"
	"github.com/oldgods/nmibot/nmibot"
	"github.com/oldgods/nmibot/nmibot/commands"
	"github.com/oldgods/nmibot/nmibot/components"
	"github.com/oldgods/nmibot/nmibot/handlers"
	"github.com/oldgods/nmibot/nmibot/logger"
	_ "go.uber.org/automaxprocs"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stdout, slog.LevelInfo, true)))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := nmibot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(cfg.Log.Handler(os.Stdout)))

	slog.Info("Starting NMI Discord Bot",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	b := nmibot.New(*cfg, version, commit)

	b.Chapters, err = loadDocument[roster.Roster](ctx, cfg.Documents.Chapters, cfg.Spaces)
	if err != nil {
		slog.Error("Failed to load chapters", slog.Any("error", err))
		os.Exit(-1)
	}
	b.Secrets, err = loadDocument[secrets.Secrets](ctx, cfg.Documents.Secrets, cfg.Spaces)
	if err != nil {
		slog.Error("Failed to load secrets", slog.Any("error", err))
		os.Exit(-1)
	}
	sec := b.Secrets.Current()

	dbStartTime := time.Now()
	b.DB = database.New(cfg.DB)
	if err = b.DB.Ping(ctx); err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.String("driver", cfg.DB.Driver),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer b.DB.Close()
	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("driver", cfg.DB.Driver),
		slog.Duration("took", time.Since(dbStartTime)))

	b.Records, err = repositories.NewOnboardingRepository(b.DB, cfg.Bot.RecordCacheSize)
	if err != nil {
		slog.Error("Failed to create onboarding repository", slog.Any("error", err))
		os.Exit(-1)
	}

	h := handler.New()

	h.Command("/create-welcome-message", handlers.WrapWithLogging("create-welcome-message", commands.CreateWelcomeMessageHandler(b)))
	h.Command("/chapters", handlers.WrapWithLogging("chapters", commands.ChaptersHandler(b)))
	h.Command("/chapter", handlers.WrapWithLogging("chapter", commands.ChapterHandler(b)))
	h.Autocomplete("/chapter", commands.ChapterAutocomplete(b))
	h.Command("/onboarding-status", handlers.WrapWithLogging("onboarding-status", commands.OnboardingStatusHandler(b)))
	h.Command("/version", handlers.WrapWithLogging("version", commands.VersionHandler(b)))

	h.Component(platform.CustomIDRegister, handlers.WrapComponentWithLogging("nmi-button", components.RegisterButtonHandler(b)))
	h.Component(platform.CustomIDComplete, handlers.WrapComponentWithLogging("complete-registration", components.CompleteHandler(b)))
	h.Component(platform.CustomIDUndo, handlers.WrapComponentWithLogging("undo-completed", components.UndoHandler(b)))
	h.Modal(platform.CustomIDForm, handlers.WrapModalWithLogging("nmi-modal", components.RegistrationFormHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), bot.NewListenerFunc(b.OnGuildMemberJoin)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	b.Onboarding = onboarding.NewService(
		b.Records,
		platform.New(b.Client.Rest(), sec.Guild()),
		nmibot.RosterLookup{Cache: b.Chapters},
		b.Settings(),
		onboarding.WithObserver(b.Metrics),
	)

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Bot.ShutdownAfter())
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands || cfg.Bot.SyncCommands {
		guildIDs := []snowflake.ID{sec.Guild()}
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", guildIDs),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, guildIDs); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	defer stopMetrics()
	if cfg.Metrics.ListenAddress != "" {
		go func() {
			if err := b.Metrics.Serve(metricsCtx, cfg.Metrics.ListenAddress); err != nil {
				logger.LogError("Metrics listener stopped", err, slog.String("address", cfg.Metrics.ListenAddress))
			}
		}()
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.",
		slog.String("guild_id", sec.Guild().String()),
		slog.String("review_channel_id", sec.ReviewChannel().String()),
	)
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	logger.LogSystem("Shutting down bot...")
}

// loadDocument opens the configured source and loads it into a new cache.
func loadDocument[T any](ctx context.Context, cfg documents.SourceConfig, spaces documents.SpacesConfig) (*documents.Cache[T], error) {
	source, err := documents.OpenSource(ctx, cfg, spaces)
	if err != nil {
		return nil, err
	}
	cache := documents.NewCache[T](source)
	if _, err := cache.Load(ctx); err != nil {
		return nil, err
	}
	return cache, nil
}
