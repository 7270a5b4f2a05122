// Package bot wires the platform connection, the invite attribution engine
// and the blacklist gate into one running unit.
package bot

import (
	"context"
	"strconv"
	"time"

	"botbase/blacklist"
	"botbase/caches"
	"botbase/config"
	"botbase/db"
	"botbase/invites"
	"botbase/models"
	"botbase/platform"

	"go.uber.org/zap"
)

const prefixCacheTTL = 5 * time.Minute

type Bot struct {
	Tracker   *invites.Tracker
	Blacklist *blacklist.Manager

	gateway  *platform.Gateway
	prefixes *caches.TimedCache[string]
	started  time.Time
	logger   *zap.SugaredLogger
}

func New(logger *zap.SugaredLogger) *Bot {
	client := platform.NewClient(config.API_BASE_URL, config.BOT_TOKEN)
	b := &Bot{
		Tracker:   invites.NewTracker(client, invites.NewGormStore(db.Instance), logger),
		Blacklist: blacklist.NewManager(db.Instance, logger),
		prefixes:  caches.NewTimedCache[string](prefixCacheTTL),
		started:   time.Now(),
		logger:    logger,
	}
	b.gateway = platform.NewGateway(config.GATEWAY_URL, config.BOT_TOKEN, b.handlers(), logger)
	return b
}

// handlers routes gateway events into the engine, dropping events from
// blacklisted guilds and users before they touch any state.
func (b *Bot) handlers() platform.Handlers {
	return platform.Handlers{
		Ready: func(ctx context.Context) error {
			if err := b.Blacklist.Initialize(); err != nil {
				return err
			}
			return b.Tracker.Reconcile(ctx)
		},
		GuildJoined: func(ctx context.Context, guild platform.Guild) error {
			if b.Blacklist.IsGuildBlacklisted(guild.ID) {
				return nil
			}
			return b.Tracker.HandleGuildJoined(ctx, guild)
		},
		GuildLeft:     b.Tracker.HandleGuildLeft,
		InviteCreated: b.Tracker.HandleInviteCreated,
		InviteDeleted: b.Tracker.HandleInviteDeleted,
		MemberJoined: func(ctx context.Context, member platform.Member) error {
			if b.Blacklist.IsGuildBlacklisted(member.GuildID) || b.Blacklist.IsUserBlacklisted(member.UserID) {
				return nil
			}
			return b.Tracker.HandleMemberJoined(ctx, member)
		},
		MemberRemoved: b.Tracker.HandleMemberRemoved,
	}
}

// Run connects to the gateway and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	return b.gateway.Run(ctx)
}

// GuildPrefix resolves the command prefix for a guild, memoized for a few
// minutes. Guilds without a custom prefix use DEFAULT_PREFIX.
func (b *Bot) GuildPrefix(guildID uint64) string {
	key := strconv.FormatUint(guildID, 10)
	if prefix, ok := b.prefixes.Get(key); ok {
		return prefix
	}
	prefix, ok := models.GuildPrefix(guildID)
	if !ok {
		prefix = config.DEFAULT_PREFIX
	}
	b.prefixes.Set(key, prefix)
	return prefix
}

// SetGuildPrefix updates the guild's prefix and invalidates the memo.
func (b *Bot) SetGuildPrefix(guildID uint64, prefix string) error {
	if err := models.SetGuildPrefix(guildID, prefix); err != nil {
		return err
	}
	b.prefixes.Delete(strconv.FormatUint(guildID, 10))
	return nil
}

// Inviter answers "who invited member X in guild G".
func (b *Bot) Inviter(guildID, memberID uint64) (models.Creator, bool) {
	return b.Tracker.Inviter(guildID, memberID)
}

func (b *Bot) Uptime() time.Duration {
	return time.Since(b.started)
}
