package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	UID              string  `gorm:"column:uid;type:varchar(36);primaryKey"`
	PostUID          string  `gorm:"column:post_uid;type:varchar(36);not null;index"`
	UserUID          string  `gorm:"column:user_uid;type:varchar(36);not null"`
	Content          string  `gorm:"type:text;not null"`
	ParentCommentUID *string `gorm:"column:parent_comment_uid;type:varchar(36)"`
	CreatedAt        int64   `gorm:"autoCreateTime:false;not null"`
	UpdatedAt        int64   `gorm:"autoUpdateTime:false;not null"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.UID == "" {
		c.UID = uuid.New().String()
	}
	return nil
}

// CommentRow is a comment joined with its author.
type CommentRow struct {
	CommentModel
	UserName  string
	UserImage *string
}

type ReportModel struct {
	UID           string  `gorm:"column:uid;type:varchar(36);primaryKey"`
	ReportType    string  `gorm:"type:varchar(20);not null"`
	ObjectUID     string  `gorm:"column:object_uid;type:varchar(36);not null"`
	ReportedByUID string  `gorm:"column:reported_by_uid;type:varchar(36);not null"`
	Reason        *string `gorm:"type:text"`
	CreatedAt     int64   `gorm:"autoCreateTime:false;not null"`
}

func (ReportModel) TableName() string {
	return "reports"
}

func (r *ReportModel) BeforeCreate(tx *gorm.DB) error {
	if r.UID == "" {
		r.UID = uuid.New().String()
	}
	return nil
}
