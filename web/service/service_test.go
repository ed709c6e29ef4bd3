package service

import (
	"os"
	"testing"

	"boardhub/database"
	"boardhub/database/model"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	os.Remove(dbPath + "-wal")
	os.Remove(dbPath + "-shm")
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
	os.Remove("test.db-wal")
	os.Remove("test.db-shm")
}

// signupUser registers a test account through the real signup path.
func signupUser(t *testing.T, email, name string) *model.User {
	t.Helper()
	authService := AuthService{}
	user, _, err := authService.Signup(email, "password123", name)
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return user
}
