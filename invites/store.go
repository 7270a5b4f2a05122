package invites

import (
	"botbase/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the durable mirror of the cache. The engine writes the cache
// first, the store second; no read-modify-write atomicity is assumed beyond
// per-row last-writer-wins.
type Store interface {
	GetAll() ([]models.Invite, error)
	// GuildIDs returns the distinct guild ids with persisted records, without
	// materializing full rows.
	GuildIDs() ([]uint64, error)
	Upsert(invite *models.Invite) error
	DeleteGuild(guildID uint64) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetAll() ([]models.Invite, error) {
	invites := []models.Invite{}
	return invites, s.db.Find(&invites).Error
}

func (s *GormStore) GuildIDs() ([]uint64, error) {
	ids := []uint64{}
	err := s.db.Model(&models.Invite{}).Distinct("guild_id").Pluck("guild_id", &ids).Error
	return ids, err
}

func (s *GormStore) Upsert(invite *models.Invite) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "invite_id"}, {Name: "guild_id"}},
		UpdateAll: true,
	}).Create(invite).Error
}

func (s *GormStore) DeleteGuild(guildID uint64) error {
	return s.db.Where("guild_id = ?", guildID).Delete(&models.Invite{}).Error
}
