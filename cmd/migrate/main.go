package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"barterhub/internal/config"
	"barterhub/pkg/database"
)

const usage = `
BarterHub - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Run all migrations (SQL + GORM)
  status      Show database connection status
  seed        Seed the admin user only
  seed-dev    Seed with development/test data
  reset       Drop all tables and re-run migrations (DANGEROUS)
  truncate    Truncate all tables (DANGEROUS)

Flags:
  -migrations string   Path to migrations directory (default "migrations")
  -admin-user string   Admin username for seeding (default "admin")
  -admin-pass string   Admin password for seeding (default "Admin@123!")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed
  go run cmd/migrate/main.go seed-dev
  go run cmd/migrate/main.go reset
`

func main() {
	migrationsDir := flag.String("migrations", "migrations", "Path to migrations directory")
	adminUser := flag.String("admin-user", "admin", "Admin username for seeding")
	adminPass := flag.String("admin-pass", "Admin@123!", "Admin password for seeding")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	database.Connect(cfg)
	defer database.Close()

	switch command {
	case "up":
		runMigrationsUp(*migrationsDir)
	case "status":
		showStatus()
	case "seed":
		runSeedProduction(*adminUser, *adminPass)
	case "seed-dev":
		runSeedDevelopment()
	case "reset":
		runReset(*migrationsDir)
	case "truncate":
		runTruncate()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(migrationsDir string) {
	log.Println("Running migrations UP...")

	if err := database.RunFullMigration(migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully!")
}

func showStatus() {
	log.Println("Checking database status...")

	if err := database.Ping(); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	tables := []string{"users", "offers", "interests", "chats", "messages", "exchange_records"}
	for _, table := range tables {
		exists, err := database.TableExists(table)
		if err != nil {
			log.Printf("Error checking table %s: %v", table, err)
			continue
		}
		if exists {
			count, _ := database.GetTableCount(table)
			log.Printf("Table %-20s exists (%d rows)", table, count)
		} else {
			log.Printf("Table %-20s does not exist", table)
		}
	}
}

func runSeedProduction(adminUser, adminPass string) {
	log.Println("Seeding database (admin only)...")

	u, err := database.SeedProduction(adminUser, adminPass)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Admin user created/verified: %s (ID: %s)", adminUser, u.ID)
}

func runSeedDevelopment() {
	log.Println("Seeding database (development mode)...")

	result, err := database.SeedDevelopment()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seed Summary:")
	log.Printf("   - Admin user: %s", result.AdminUser.Username)
	log.Printf("   - Test users: %d", len(result.TestUsers))
	log.Printf("   - Offers: %d", len(result.Offers))
	log.Println("Development seeding completed!")
}

func runReset(migrationsDir string) {
	log.Println("WARNING: This will DROP all tables and re-run migrations!")

	log.Println("Dropping all tables...")
	if err := database.DropAllTables(); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	log.Println("Running migrations...")
	if err := database.RunFullMigration(migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database reset completed!")
}

func runTruncate() {
	log.Println("WARNING: This will TRUNCATE all tables!")

	if err := database.TruncateAllTables(); err != nil {
		log.Fatalf("Truncate failed: %v", err)
	}

	log.Println("All tables truncated!")
}
