package store

import (
	"context"
	"testing"

	"github.com/stripscan/stripscan/internal/db"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "operator", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "operator" {
		t.Errorf("expected username 'operator', got %q", user.Username)
	}

	byName, err := GetUserByUsername(ctx, database, "operator")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if byName == nil || byName.ID != user.ID {
		t.Errorf("expected same user by username, got %+v", byName)
	}
}

func TestGetUserNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := GetUser(ctx, database, 42)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for missing user, got %+v", user)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "operator", "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := CreateUser(ctx, database, "operator", "hash2"); err == nil {
		t.Error("expected error for duplicate username")
	}
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "operator", "old")
	if err := UpdateUserPassword(ctx, database, user.ID, "new"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.PasswordHash != "new" {
		t.Errorf("expected updated hash, got %q", got.PasswordHash)
	}
}
