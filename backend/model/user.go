package model

import (
	"errors"
	"time"

	"media-uploader/backend/common"
	apperrors "media-uploader/backend/common/errors"

	"gorm.io/gorm"
)

// User is a credential record. Password always holds a bcrypt hash, never
// plaintext.
type User struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Password  string    `json:"-" gorm:"size:200;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func CountUsers() (int64, error) {
	var count int64
	err := DB.Model(&User{}).Count(&count).Error
	return count, err
}

func GetUserByUsername(username string) (*User, error) {
	var user User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrUserNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

func IsUsernameTaken(username string) bool {
	var count int64
	err := DB.Model(&User{}).Where("username = ?", username).Count(&count).Error
	return err == nil && count > 0
}

func (user *User) Insert() error {
	return DB.Create(user).Error
}

// ReplaceUser deletes any user with the given username and inserts a fresh
// record in one transaction. Used by the setup flow only.
func ReplaceUser(username string, hashedPassword string) (*User, error) {
	user := &User{Username: username, Password: hashedPassword}
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&User{}).Error; err != nil {
			return err
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckCredentials validates a username/password pair against the stored
// hash and returns the matching user.
func CheckCredentials(username string, password string) (*User, error) {
	invalid := apperrors.New(apperrors.ErrInvalidCredentials, "invalid credentials")
	user, err := GetUserByUsername(username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}
	if !common.ValidatePasswordAndHash(password, user.Password) {
		return nil, invalid
	}
	return user, nil
}
