package models

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"gorm.io/gorm"
)

// PasswordReset is a single-use reset token. At most one unexpired, unused
// token exists per user: creating a new one marks prior tokens used.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"type:varchar(255);unique;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// IsValid reports whether the token is unused and unexpired.
func (r *PasswordReset) IsValid() bool {
	return !r.Used && time.Now().UTC().Before(r.ExpiresAt)
}

// GenerateResetToken returns a URL-safe random token.
func GenerateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// CreateResetToken invalidates the user's outstanding tokens and issues a
// fresh one.
func CreateResetToken(db *gorm.DB, userID uint, expiresIn time.Duration) (*PasswordReset, error) {
	if err := db.Model(&PasswordReset{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error; err != nil {
		return nil, err
	}

	token, err := GenerateResetToken()
	if err != nil {
		return nil, err
	}

	reset := &PasswordReset{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(expiresIn),
	}
	if err := db.Create(reset).Error; err != nil {
		return nil, err
	}
	return reset, nil
}

// FindValidResetToken looks a token up and returns it only while valid.
func FindValidResetToken(db *gorm.DB, token string) (*PasswordReset, error) {
	var reset PasswordReset
	if err := db.Preload("User").Where("token = ?", token).First(&reset).Error; err != nil {
		return nil, err
	}
	if !reset.IsValid() {
		return nil, gorm.ErrRecordNotFound
	}
	return &reset, nil
}
