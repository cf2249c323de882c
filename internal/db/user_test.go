package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	DB = gdb

	return func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestEnsureBootstrapUser(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	if err := EnsureBootstrapUser("planner", "planner123"); err != nil {
		t.Fatalf("EnsureBootstrapUser returned error: %v", err)
	}

	var user User
	if err := DB.Where("username = ?", "planner").First(&user).Error; err != nil {
		t.Fatalf("expected bootstrap user to exist: %v", err)
	}
	if user.Password == "planner123" {
		t.Fatal("password stored in plaintext")
	}
	if !user.CheckPassword("planner123") {
		t.Fatal("CheckPassword rejected the bootstrap password")
	}
	if user.CheckPassword("wrong") {
		t.Fatal("CheckPassword accepted a wrong password")
	}

	// 重复调用不改动已有账号，也不重置密码
	if err := EnsureBootstrapUser("planner", "other-pass"); err != nil {
		t.Fatalf("second EnsureBootstrapUser returned error: %v", err)
	}
	var count int64
	DB.Model(&User{}).Where("username = ?", "planner").Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
	var reloaded User
	DB.Where("username = ?", "planner").First(&reloaded)
	if !reloaded.CheckPassword("planner123") {
		t.Fatal("existing password was overwritten")
	}
}

func TestEnsureBootstrapUserSkipsBlankCredentials(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	if err := EnsureBootstrapUser("  ", "planner123"); err != nil {
		t.Fatalf("blank username should be skipped, got %v", err)
	}
	if err := EnsureBootstrapUser("planner", "   "); err != nil {
		t.Fatalf("blank password should be skipped, got %v", err)
	}

	var count int64
	DB.Model(&User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}
