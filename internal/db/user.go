package db

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了用户模型
// 凭证的签发/校验属于外部协作方，这里只保留引导账号所需的最小字段
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
}

// CheckPassword 校验明文密码是否与存储的 bcrypt 哈希匹配
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// EnsureBootstrapUser 保证引导账号存在：用户名或密码为空时跳过，
// 账号已存在时不做任何修改（包括密码），否则以 bcrypt 哈希创建。
func EnsureBootstrapUser(username, password string) error {
	name := strings.TrimSpace(username)
	plain := strings.TrimSpace(password)
	if name == "" || plain == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var count int64
	if err := DB.Model(&User{}).Where("username = ?", name).Count(&count).Error; err != nil {
		return fmt.Errorf("check bootstrap user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}
	if err := DB.Create(&User{Username: name, Password: string(hashed)}).Error; err != nil {
		return fmt.Errorf("create bootstrap user: %w", err)
	}

	return nil
}
