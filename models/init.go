package models

import (
	"botbase/db"
)

func Init() {
	db.Instance.AutoMigrate(&Invite{})
	db.Instance.AutoMigrate(&GuildSettings{})
	db.Instance.AutoMigrate(&BlacklistEntry{})
}
