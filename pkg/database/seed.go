package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"barterhub/internal/domain/offer"
	"barterhub/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	AdminUsername    string
	AdminEmail       string
	AdminPassword    string
	AdminDisplayName string
	CreateTestUsers  bool
	TestUserCount    int
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		AdminUsername:    "admin",
		AdminEmail:       "admin@barterhub.local",
		AdminPassword:    "Admin@123!",
		AdminDisplayName: "System Admin",
		CreateTestUsers:  true,
		TestUserCount:    5,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	AdminUser *user.User
	TestUsers []*user.User
	Offers    []*offer.Offer
}

// Seed runs the complete database seeding
func Seed(cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	result := &SeedResult{}

	log.Println("Starting database seeding...")

	adminUser, err := seedAdminUser(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}
	result.AdminUser = adminUser

	if cfg.CreateTestUsers {
		testUsers, err := seedTestUsers(cfg.TestUserCount)
		if err != nil {
			return nil, fmt.Errorf("failed to seed test users: %w", err)
		}
		result.TestUsers = testUsers

		offers, err := seedOffers(testUsers)
		if err != nil {
			return nil, fmt.Errorf("failed to seed offers: %w", err)
		}
		result.Offers = offers
	}

	log.Println("Database seeding completed successfully!")
	return result, nil
}

// SeedMinimal runs minimal seeding (admin user only)
func SeedMinimal(cfg *SeedConfig) (*user.User, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	return seedAdminUser(cfg)
}

func seedAdminUser(cfg *SeedConfig) (*user.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var existing user.User
	if err := DB.Where("username = ?", cfg.AdminUsername).First(&existing).Error; err == nil {
		log.Println("Admin user already exists, skipping creation")
		return &existing, nil
	}

	adminUser := &user.User{
		ID:           uuid.New(),
		Username:     cfg.AdminUsername,
		Email:        sql.NullString{String: cfg.AdminEmail, Valid: true},
		PasswordHash: string(hashedPassword),
		DisplayName:  cfg.AdminDisplayName,
		Bio:          "System Administrator",
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := DB.Create(adminUser).Error; err != nil {
		return nil, err
	}

	log.Printf("Admin user seeded: %s (%s)", cfg.AdminUsername, adminUser.ID)
	return adminUser, nil
}

func seedTestUsers(count int) ([]*user.User, error) {
	testUserData := []struct {
		username    string
		email       string
		displayName string
		bio         string
	}{
		{"alice", "alice@test.com", "Alice Johnson", "Trading vinyl and vintage cameras"},
		{"bob", "bob@test.com", "Bob Smith", "Woodworker, always after good tools"},
		{"charlie", "charlie@test.com", "Charlie Brown", "Board game collector"},
		{"diana", "diana@test.com", "Diana Prince", "Plants for books, books for plants"},
		{"edward", "edward@test.com", "Edward Chen", "Bike parts and repair trades"},
		{"fiona", "fiona@test.com", "Fiona Green", "Handmade ceramics"},
		{"george", "george@test.com", "George Miller", "Old synths and audio gear"},
		{"hannah", "hannah@test.com", "Hannah White", "Sewing and textile swaps"},
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Test@123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, count)
	for i := 0; i < count && i < len(testUserData); i++ {
		data := testUserData[i]

		var existing user.User
		if err := DB.Where("username = ?", data.username).First(&existing).Error; err == nil {
			log.Printf("Test user %s already exists, skipping", data.username)
			users = append(users, &existing)
			continue
		}

		newUser := &user.User{
			ID:           uuid.New(),
			Username:     data.username,
			Email:        sql.NullString{String: data.email, Valid: true},
			PasswordHash: string(hashedPassword),
			DisplayName:  data.displayName,
			Bio:          data.bio,
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := DB.Create(newUser).Error; err != nil {
			return nil, err
		}
		users = append(users, newUser)
	}

	log.Printf("Seeded %d test users", len(users))
	return users, nil
}

func seedOffers(users []*user.User) ([]*offer.Offer, error) {
	offerData := [][]string{
		{"Vintage vinyl collection", "Polaroid SX-70 camera"},
		{"Handmade oak bookshelf", "Set of chisels, lightly used"},
		{"Settlers of Catan, complete", "Chess clock"},
		{"Monstera cuttings", "Hardcover sci-fi bundle"},
		{"Road bike wheelset", "Bike repair afternoon"},
		{"Ceramic dinner set", "Pottery wheel lessons"},
		{"Korg Minilogue", "Studio monitor pair"},
		{"Custom tote bags", "Sewing machine tune-up"},
	}

	offers := make([]*offer.Offer, 0, len(users)*2)
	for i, u := range users {
		titles := offerData[i%len(offerData)]
		for _, title := range titles {
			var count int64
			DB.Model(&offer.Offer{}).Where("user_id = ? AND title = ?", u.ID, title).Count(&count)
			if count > 0 {
				continue
			}

			o := &offer.Offer{
				ID:          uuid.New(),
				UserID:      u.ID,
				Title:       title,
				Description: fmt.Sprintf("Offered by %s. Open to swap proposals.", u.DisplayName),
				Status:      offer.StatusActive,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}
			if err := DB.Create(o).Error; err != nil {
				return nil, err
			}
			offers = append(offers, o)
		}
	}

	log.Printf("Seeded %d offers", len(offers))
	return offers, nil
}

// SeedDevelopment seeds the database with development/test data
func SeedDevelopment() (*SeedResult, error) {
	cfg := DefaultSeedConfig()
	cfg.CreateTestUsers = true
	cfg.TestUserCount = 8
	return Seed(cfg)
}

// SeedProduction seeds only the admin user with the given credentials
func SeedProduction(adminUsername, adminPassword string) (*user.User, error) {
	cfg := DefaultSeedConfig()
	cfg.AdminUsername = strings.ToLower(adminUsername)
	cfg.AdminPassword = adminPassword
	cfg.CreateTestUsers = false
	return SeedMinimal(cfg)
}

// ClearAndReseed truncates all tables and reseeds
func ClearAndReseed(cfg *SeedConfig) (*SeedResult, error) {
	if err := TruncateAllTables(); err != nil {
		return nil, fmt.Errorf("failed to clear database: %w", err)
	}
	return Seed(cfg)
}
