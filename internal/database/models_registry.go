package database

import "qubeia/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.ContentItem{},
		&models.Punishment{},
		&models.Appeal{},
		&models.DirectMessage{},
	}
}
