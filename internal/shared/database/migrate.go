package database

import (
	"gorm.io/gorm"

	"plugevents/internal/appointments"
	"plugevents/internal/receipts"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&receipts.Receipt{},
		&appointments.Appointment{},
	)
}
