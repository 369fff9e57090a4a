package nmibot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/oldgods/nmibot/internal/domain/roster"
	"github.com/oldgods/nmibot/internal/domain/secrets"
	"github.com/oldgods/nmibot/internal/gateways/database"
	"github.com/oldgods/nmibot/internal/gateways/documents"
	"github.com/oldgods/nmibot/nmibot/metrics"
)

const eventTimeout = 15 * time.Second

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Metrics:   metrics.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg        Config
	Client     bot.Client
	Paginator  *paginator.Manager
	Metrics    *metrics.Metrics
	Version    string
	Commit     string
	DB         *database.DB
	Chapters   *documents.Cache[roster.Roster]
	Secrets    *documents.Cache[secrets.Secrets]
	Records    onboarding.Repository
	Onboarding *onboarding.Service
}

// SetupBot creates the gateway client. Secrets must be loaded first.
func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Secrets.Current().Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMembers)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// Settings returns the orchestrator settings from the loaded secrets document.
func (b *Bot) Settings() onboarding.Settings {
	s := b.Secrets.Current()
	return onboarding.Settings{
		ReviewChannelID: s.ReviewChannel(),
		NewMemberRoleID: s.NewMemberRole(),
		MemberRoleID:    s.MemberRole(),
	}
}

// Handle runs event through the orchestrator and records refusals.
func (b *Bot) Handle(ctx context.Context, event onboarding.Event) (onboarding.Outcome, error) {
	out, err := b.Onboarding.Handle(ctx, event)
	if err != nil {
		b.Metrics.ObserveRejection(event, err)
	}
	return out, err
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("NMI Bot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit),
		slog.Int("chapters", b.Chapters.Current().Count()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("new members arrive"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

// OnGuildMemberJoin starts tracking members joining the configured guild.
func (b *Bot) OnGuildMemberJoin(e *events.GuildMemberJoin) {
	if e.GuildID != b.Secrets.Current().Guild() || e.Member.User.Bot {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	memberID := e.Member.User.ID
	if _, err := b.Handle(ctx, onboarding.MemberJoined{MemberID: memberID}); err != nil {
		slog.Error("Failed to track new member",
			slog.String("type", "flow"),
			slog.String("member_id", memberID.String()),
			slog.String("user_name", e.Member.User.Username),
			slog.Any("error", err),
		)
	}
}

// RosterLookup serves the orchestrator from the cached chapter roster, so
// chapters saved through the cache are visible without a restart.
type RosterLookup struct {
	Cache *documents.Cache[roster.Roster]
}

var _ onboarding.ChapterLookup = RosterLookup{}

func (l RosterLookup) Chapter(index int) (roster.Chapter, bool) {
	return l.Cache.Current().Chapter(index)
}

func (l RosterLookup) Count() int {
	return l.Cache.Current().Count()
}
