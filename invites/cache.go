// Package invites tracks every active invite link for every guild the bot
// belongs to and works out, on each member join, which invite was used.
package invites

import (
	"strconv"

	"botbase/models"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Cache is the engine's working set: live invite records keyed by
// (invite_id, guild_id). It exclusively owns the records it holds; the store
// only ever sees serialized mirrors.
type Cache struct {
	records cmap.ConcurrentMap[string, *models.Invite]
}

func NewCache() *Cache {
	return &Cache{records: cmap.New[*models.Invite]()}
}

func cacheKey(inviteID string, guildID uint64) string {
	return strconv.FormatUint(guildID, 10) + ":" + inviteID
}

func (c *Cache) Get(inviteID string, guildID uint64) (*models.Invite, bool) {
	return c.records.Get(cacheKey(inviteID, guildID))
}

func (c *Cache) Set(invite *models.Invite) {
	c.records.Set(cacheKey(invite.InviteID, invite.GuildID), invite)
}

func (c *Cache) Delete(inviteID string, guildID uint64) {
	c.records.Remove(cacheKey(inviteID, guildID))
}

// Guild returns all cached records for one guild.
func (c *Cache) Guild(guildID uint64) []*models.Invite {
	result := []*models.Invite{}
	for item := range c.records.IterBuffered() {
		if item.Val.GuildID == guildID {
			result = append(result, item.Val)
		}
	}
	return result
}

// DeleteGuild drops every record belonging to the guild.
func (c *Cache) DeleteGuild(guildID uint64) {
	for _, invite := range c.Guild(guildID) {
		c.records.Remove(cacheKey(invite.InviteID, invite.GuildID))
	}
}

// GuildIDs returns the set of guilds with at least one cached record.
func (c *Cache) GuildIDs() map[uint64]bool {
	result := map[uint64]bool{}
	for item := range c.records.IterBuffered() {
		result[item.Val.GuildID] = true
	}
	return result
}

func (c *Cache) Len() int {
	return c.records.Count()
}
