package database

import (
	"fmt"
	"log"

	"barterhub/internal/domain/chat"
	"barterhub/internal/domain/exchange"
	"barterhub/internal/domain/interest"
	"barterhub/internal/domain/offer"
	"barterhub/internal/domain/user"
)

// tables in dependency order; children first for drops and truncates.
var managedTables = []string{
	"exchange_records",
	"messages",
	"chats",
	"interests",
	"offers",
	"users",
}

// Close releases the underlying connection pool.
func Close() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

// Ping verifies the database connection.
func Ping() error {
	return HealthCheck()
}

// RunFullMigration applies raw SQL migrations followed by GORM AutoMigrate.
func RunFullMigration(migrationsDir string) error {
	if err := ApplyRawMigrations(migrationsDir); err != nil {
		return err
	}
	return DB.AutoMigrate(
		&user.User{},
		&offer.Offer{},
		&interest.Interest{},
		&chat.Chat{},
		&chat.Message{},
		&exchange.Record{},
	)
}

// TableExists reports whether the named table is present.
func TableExists(table string) (bool, error) {
	if DB == nil {
		return false, fmt.Errorf("database not connected")
	}
	return DB.Migrator().HasTable(table), nil
}

// GetTableCount returns the row count of the named table.
func GetTableCount(table string) (int64, error) {
	var count int64
	err := DB.Table(table).Count(&count).Error
	return count, err
}

// DropAllTables drops every managed table.
func DropAllTables() error {
	for _, table := range managedTables {
		if !DB.Migrator().HasTable(table) {
			continue
		}
		log.Printf("Dropping table: %s", table)
		if err := DB.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

// TruncateAllTables empties every managed table while keeping the schema.
func TruncateAllTables() error {
	for _, table := range managedTables {
		if !DB.Migrator().HasTable(table) {
			continue
		}
		log.Printf("Truncating table: %s", table)
		if err := DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}
