package models

import (
	"botbase/db"

	"gorm.io/gorm/clause"
)

type GuildSettings struct {
	GuildID   uint64 `gorm:"primaryKey;autoIncrement:false"`
	UpdatedAt int64
	Prefix    string `gorm:"type:varchar(16)"`
}

// GuildPrefix returns the guild's custom command prefix, if one is set.
func GuildPrefix(guildID uint64) (string, bool) {
	settings := GuildSettings{}
	err := db.Instance.First(&settings, "guild_id = ?", guildID).Error
	if err != nil || settings.Prefix == "" {
		return "", false
	}
	return settings.Prefix, true
}

func SetGuildPrefix(guildID uint64, prefix string) error {
	return db.Instance.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		UpdateAll: true,
	}).Create(&GuildSettings{GuildID: guildID, Prefix: prefix}).Error
}
