package models

import (
	"log"

	"github.com/simailhq/simail_backend/config"
)

// MigrateTable runs AutoMigrate for every entity. Skipped on startup
// when SKIP_MIGRATIONS is set.
func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Audit{},
		&Finding{},
		&FollowUp{},
		&Report{},
		&Attachment{},
		&AppSettings{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
