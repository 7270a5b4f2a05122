// Package platform is the boundary to the chat platform: the typed events the
// gateway emits, the read queries the rest of the bot is allowed to make, and
// the clients implementing both.
package platform

import (
	"context"
	"errors"
)

// ErrMissingPermission is returned when the bot lacks the permission required
// for a query, e.g. listing a guild's invites without the manage-guild right.
var ErrMissingPermission = errors.New("platform: missing permission")

type Guild struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// Invite is a live invite as reported by the platform. Inviter is nil for
// guild vanity invites, which carry the guild name instead.
type Invite struct {
	Code      string `json:"code"`
	GuildID   uint64 `json:"guild_id"`
	GuildName string `json:"guild_name,omitempty"`
	Uses      uint32 `json:"uses"`
	MaxUses   uint32 `json:"max_uses"`
	Inviter   *User  `json:"inviter,omitempty"`
}

type Member struct {
	UserID   uint64 `json:"user_id"`
	GuildID  uint64 `json:"guild_id"`
	Username string `json:"username"`
}

// Session is the read side of the platform connection. Both the live REST
// client and test fakes implement it.
type Session interface {
	// Guilds lists the guilds the bot currently belongs to.
	Guilds(ctx context.Context) ([]Guild, error)
	// GuildInvites lists a guild's currently active invites.
	GuildInvites(ctx context.Context, guildID uint64) ([]Invite, error)
}

// Handlers receive gateway events. Nil handlers are skipped. Handler errors
// are logged by the gateway, they never stop the read loop.
type Handlers struct {
	Ready         func(ctx context.Context) error
	GuildJoined   func(ctx context.Context, guild Guild) error
	GuildLeft     func(ctx context.Context, guildID uint64) error
	InviteCreated func(ctx context.Context, invite Invite) error
	InviteDeleted func(ctx context.Context, invite Invite) error
	MemberJoined  func(ctx context.Context, member Member) error
	MemberRemoved func(ctx context.Context, member Member) error
}
