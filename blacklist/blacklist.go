// Package blacklist gates event processing for guilds and users the operator
// has banned from using the bot.
package blacklist

import (
	"strconv"

	"botbase/models"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Manager struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	guilds cmap.ConcurrentMap[string, struct{}]
	users  cmap.ConcurrentMap[string, struct{}]
}

func NewManager(db *gorm.DB, logger *zap.SugaredLogger) *Manager {
	return &Manager{
		db:     db,
		logger: logger,
		guilds: cmap.New[struct{}](),
		users:  cmap.New[struct{}](),
	}
}

func key(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// Initialize hydrates the in-memory sets from the store. Runs once at startup.
func (m *Manager) Initialize() error {
	entries := []models.BlacklistEntry{}
	if err := m.db.Find(&entries).Error; err != nil {
		return err
	}
	for _, e := range entries {
		if e.Kind == models.BlacklistGuild {
			m.guilds.Set(key(e.TargetID), struct{}{})
		} else {
			m.users.Set(key(e.TargetID), struct{}{})
		}
	}
	m.logger.Debugf("blacklist loaded, %d entries", len(entries))
	return nil
}

func (m *Manager) IsGuildBlacklisted(guildID uint64) bool {
	return m.guilds.Has(key(guildID))
}

func (m *Manager) IsUserBlacklisted(userID uint64) bool {
	return m.users.Has(key(userID))
}

func (m *Manager) Add(kind models.BlacklistKind, targetID uint64, reason string) error {
	if reason == "" {
		reason = "Unknown"
	}
	if kind == models.BlacklistGuild {
		m.guilds.Set(key(targetID), struct{}{})
	} else {
		m.users.Set(key(targetID), struct{}{})
	}
	return m.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "target_id"}},
		UpdateAll: true,
	}).Create(&models.BlacklistEntry{Kind: kind, TargetID: targetID, Reason: reason}).Error
}

// Remove deletes the entry, ignoring targets that were never blacklisted.
func (m *Manager) Remove(kind models.BlacklistKind, targetID uint64) error {
	if kind == models.BlacklistGuild {
		m.guilds.Remove(key(targetID))
	} else {
		m.users.Remove(key(targetID))
	}
	return m.db.Where("kind = ? AND target_id = ?", kind, targetID).
		Delete(&models.BlacklistEntry{}).Error
}
