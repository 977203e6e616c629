package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UID          string  `gorm:"column:uid;type:varchar(36);primaryKey"`
	Name         string  `gorm:"type:varchar(255);not null"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	ProfileImage *string `gorm:"type:varchar(500)"`
	Bio          *string `gorm:"type:text"`
	SocialLinks  []byte  `gorm:"type:jsonb"`
	IsAdmin      bool    `gorm:"not null;default:false"`
	CreatedAt    int64   `gorm:"autoCreateTime:false;not null"`
	UpdatedAt    int64   `gorm:"autoUpdateTime:false;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UID == "" {
		u.UID = uuid.New().String()
	}
	return nil
}

type PasswordResetModel struct {
	UserEmail string `gorm:"type:varchar(255);not null;index"`
	Token     string `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt int64  `gorm:"autoCreateTime:false;not null"`
	ExpireAt  int64  `gorm:"not null"`
}

func (PasswordResetModel) TableName() string {
	return "password_resets"
}
