package store

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"messenger/internal/domain"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Chat{}, &domain.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "hash")
	if err != nil {
		t.Fatalf("NewUser() error: %v", err)
	}
	if err := NewUsers(db).Create(user); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return user
}

func TestMessagesAppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessages(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	chat := domain.NewChat("general")
	if err := NewChats(db).Create(chat); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	// Append out of timestamp order; the read path must sort ascending.
	if err := repo.Append(chat.ID, bob, "second", base.Add(time.Minute)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := repo.Append(chat.ID, alice, "first", base); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	records, err := repo.ListByChat(chat.ID)
	if err != nil {
		t.Fatalf("ListByChat() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Content != "first" || records[0].Username != "alice" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].Content != "second" || records[1].Username != "bob" {
		t.Errorf("unexpected second record: %+v", records[1])
	}
	if !records[0].Timestamp.Before(records[1].Timestamp) {
		t.Error("records not in ascending timestamp order")
	}
}

func TestListByChatUnknownChat(t *testing.T) {
	db := setupTestDB(t)
	records, err := NewMessages(db).ListByChat("nowhere")
	if err != nil {
		t.Fatalf("ListByChat() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty history for unknown chat, got %d", len(records))
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	users := NewUsers(db)
	n, err := users.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n == 0 {
		t.Fatal("seed created no users")
	}

	if err := Seed(db); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	n2, err := users.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n2 != n {
		t.Errorf("second seed changed user count: %d -> %d", n, n2)
	}

	if _, err := NewChats(db).FindByName("Sweet Home"); err != nil {
		t.Errorf("expected seeded default chat: %v", err)
	}
}
