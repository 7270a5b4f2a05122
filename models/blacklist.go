package models

type BlacklistKind uint8

const (
	BlacklistGuild BlacklistKind = iota
	BlacklistUser
)

type BlacklistEntry struct {
	Kind      BlacklistKind `gorm:"primaryKey;autoIncrement:false"`
	TargetID  uint64        `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt int64
	Reason    string `gorm:"type:varchar(200)"`
}
