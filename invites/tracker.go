package invites

import (
	"context"
	"strconv"
	"sync"

	"botbase/models"
	"botbase/platform"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// Tracker is the invite attribution engine. It keeps the cache and store
// consistent with the platform's live invite state and, on member joins,
// decides which invite was used. It favors correctness over coverage: when
// the evidence is ambiguous it attributes nothing.
type Tracker struct {
	session platform.Session
	store   Store
	cache   *Cache
	logger  *zap.SugaredLogger

	// Every cache-mutating path for a guild runs under that guild's mutex,
	// held across the live fetch as well. Two member-join events for the same
	// guild would otherwise interleave their fetches and both see the same
	// use counters, double-attributing the join.
	guildLocks cmap.ConcurrentMap[string, *sync.Mutex]
}

func NewTracker(session platform.Session, store Store, logger *zap.SugaredLogger) *Tracker {
	return &Tracker{
		session:    session,
		store:      store,
		cache:      NewCache(),
		logger:     logger,
		guildLocks: cmap.New[*sync.Mutex](),
	}
}

func (t *Tracker) guildLock(guildID uint64) *sync.Mutex {
	return t.guildLocks.Upsert(
		strconv.FormatUint(guildID, 10),
		&sync.Mutex{},
		func(exist bool, current, fresh *sync.Mutex) *sync.Mutex {
			if exist {
				return current
			}
			return fresh
		},
	)
}

// Reconcile converges cache, store and live platform state. It runs after
// every gateway (re)connect, before live events for the session are handled:
// guilds joined while offline get loaded, guilds left while offline get
// purged, so the tracked guild set exactly mirrors membership.
func (t *Tracker) Reconcile(ctx context.Context) error {
	records, err := t.store.GetAll()
	if err != nil {
		return err
	}
	for n := range records {
		record := records[n]
		t.cache.Set(&record)
	}

	persistedIDs, err := t.store.GuildIDs()
	if err != nil {
		return err
	}
	persisted := map[uint64]bool{}
	for _, id := range persistedIDs {
		persisted[id] = true
	}

	guilds, err := t.session.Guilds(ctx)
	if err != nil {
		return err
	}
	current := map[uint64]bool{}
	for _, guild := range guilds {
		current[guild.ID] = true
		if !persisted[guild.ID] {
			if err := t.LoadGuild(ctx, guild); err != nil {
				return err
			}
		}
	}

	for id := range persisted {
		if !current[id] {
			if err := t.PurgeGuild(id); err != nil {
				return err
			}
		}
	}
	t.logger.Debugf("invite tracking reconciled, %d records across %d guilds", t.cache.Len(), len(current))
	return nil
}

// LoadGuild pulls a guild's live invites into cache and store. Counters may
// have drifted while the bot was offline, so for known invites only the use
// count is refreshed. Missing permission degrades to "no invites tracked".
func (t *Tracker) LoadGuild(ctx context.Context, guild platform.Guild) error {
	lock := t.guildLock(guild.ID)
	lock.Lock()
	defer lock.Unlock()

	live, err := t.session.GuildInvites(ctx, guild.ID)
	if err == platform.ErrMissingPermission {
		t.logger.Errorf("cannot track invites in guild %d (%s): missing permission", guild.ID, guild.Name)
		return nil
	}
	if err != nil {
		return err
	}

	for _, invite := range live {
		record, ok := t.cache.Get(invite.Code, guild.ID)
		if !ok {
			record = newRecord(invite, guild)
		} else {
			record.Uses = invite.Uses
		}
		if err := t.save(record); err != nil {
			return err
		}
	}
	t.logger.Debugf("loaded %d invites for guild %d (%s)", len(live), guild.ID, guild.Name)
	return nil
}

// PurgeGuild drops all invite state for a guild the bot no longer belongs to.
func (t *Tracker) PurgeGuild(guildID uint64) error {
	lock := t.guildLock(guildID)
	lock.Lock()
	t.cache.DeleteGuild(guildID)
	err := t.store.DeleteGuild(guildID)
	lock.Unlock()
	t.guildLocks.Remove(strconv.FormatUint(guildID, 10))
	if err != nil {
		return err
	}
	t.logger.Debugf("deleted all invites for guild %d", guildID)
	return nil
}

// save writes the record through: cache first (runtime source of truth),
// store second (durability).
func (t *Tracker) save(record *models.Invite) error {
	t.cache.Set(record)
	return t.store.Upsert(record)
}

func newRecord(invite platform.Invite, guild platform.Guild) *models.Invite {
	createdBy := models.VanityCreator(guild.ID, guild.Name)
	if invite.Inviter != nil {
		createdBy = models.MemberCreator(invite.Inviter.ID)
	}
	return &models.Invite{
		InviteID:  invite.Code,
		GuildID:   guild.ID,
		Uses:      invite.Uses,
		MaxUses:   invite.MaxUses,
		CreatedBy: createdBy,
	}
}

// HandleGuildJoined tracks a guild the bot was just added to.
func (t *Tracker) HandleGuildJoined(ctx context.Context, guild platform.Guild) error {
	return t.LoadGuild(ctx, guild)
}

func (t *Tracker) HandleGuildLeft(ctx context.Context, guildID uint64) error {
	return t.PurgeGuild(guildID)
}

func (t *Tracker) HandleInviteCreated(ctx context.Context, invite platform.Invite) error {
	lock := t.guildLock(invite.GuildID)
	lock.Lock()
	defer lock.Unlock()

	createdBy := models.VanityCreator(invite.GuildID, invite.GuildName)
	if invite.Inviter != nil {
		createdBy = models.MemberCreator(invite.Inviter.ID)
	}
	return t.save(&models.Invite{
		InviteID:  invite.Code,
		GuildID:   invite.GuildID,
		Uses:      invite.Uses,
		MaxUses:   invite.MaxUses,
		CreatedBy: createdBy,
	})
}

// HandleInviteDeleted intentionally keeps the record. The member-join event
// explaining the final use of an invite arrives *after* the platform's delete
// event for it; dropping the record here would make that join unattributable.
// The record goes away with the guild purge instead.
func (t *Tracker) HandleInviteDeleted(ctx context.Context, invite platform.Invite) error {
	t.logger.Debugf("retaining deleted invite %s for guild %d", invite.Code, invite.GuildID)
	return nil
}

// HandleMemberJoined works out which invite the member used.
//
// A cached invite is a candidate when the live list shows exactly one more
// use than last observed, or when it vanished from the live list entirely
// (hit max_uses and was auto-deleted by the platform). Exactly one candidate
// means attribution; zero or several mean the join stays unattributed, a
// wrong answer being worse than none.
func (t *Tracker) HandleMemberJoined(ctx context.Context, member platform.Member) error {
	lock := t.guildLock(member.GuildID)
	lock.Lock()
	defer lock.Unlock()

	live, err := t.session.GuildInvites(ctx, member.GuildID)
	if err == platform.ErrMissingPermission {
		t.logger.Warnf("cannot attribute member %d in guild %d: missing permission", member.UserID, member.GuildID)
		return nil
	}
	if err != nil {
		return err
	}

	candidates := []*models.Invite{}
	liveIDs := map[string]bool{}
	for _, invite := range live {
		liveIDs[invite.Code] = true
		record, ok := t.cache.Get(invite.Code, member.GuildID)
		if ok && invite.Uses == record.Uses+1 {
			candidates = append(candidates, record)
		}
	}
	for _, record := range t.cache.Guild(member.GuildID) {
		if !liveIDs[record.InviteID] {
			candidates = append(candidates, record)
		}
	}

	switch len(candidates) {
	case 1:
		record := candidates[0]
		record.Uses++
		record.AddMember(member.UserID)
		return t.save(record)
	case 0:
		t.logger.Warnf("could not figure out who invited member %d in guild %d", member.UserID, member.GuildID)
	default:
		t.logger.Warnf("could not figure out who invited member %d in guild %d, %d plausible invites", member.UserID, member.GuildID, len(candidates))
	}
	return nil
}

// HandleMemberRemoved retires the member from the invite that brought them
// in, keeping the id around for invite-abuse checks. No matching invite just
// means their inviter was never known.
func (t *Tracker) HandleMemberRemoved(ctx context.Context, member platform.Member) error {
	lock := t.guildLock(member.GuildID)
	lock.Lock()
	defer lock.Unlock()

	for _, record := range t.cache.Guild(member.GuildID) {
		if record.RetireMember(member.UserID) {
			return t.save(record)
		}
	}
	return nil
}

// Inviter answers who invited the member, resolved against the cache. The
// second return is false when no attribution is known. Reads take the guild
// lock too: the gateway goroutine mutates member lists under it.
func (t *Tracker) Inviter(guildID, memberID uint64) (models.Creator, bool) {
	lock := t.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	for _, record := range t.cache.Guild(guildID) {
		if record.UsedBy(memberID) {
			return record.CreatedBy, true
		}
	}
	return models.Creator{}, false
}

// GuildInvites returns copies of the cached records for a guild, so callers
// never hold live records outside the guild lock.
func (t *Tracker) GuildInvites(guildID uint64) []models.Invite {
	lock := t.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	result := []models.Invite{}
	for _, record := range t.cache.Guild(guildID) {
		clone := *record
		clone.InvitedMembers = append([]uint64(nil), record.InvitedMembers...)
		clone.PreviouslyInvitedMembers = append([]uint64(nil), record.PreviouslyInvitedMembers...)
		result = append(result, clone)
	}
	return result
}
