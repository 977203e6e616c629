package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	UID           string  `gorm:"column:uid;type:varchar(36);primaryKey"`
	Title         string  `gorm:"type:varchar(255);not null"`
	Content       string  `gorm:"type:text;not null"`
	AuthorUID     string  `gorm:"column:author_uid;type:varchar(36);not null;index"`
	Status        string  `gorm:"type:varchar(20);not null;default:'draft'"`
	FeaturedImage *string `gorm:"type:varchar(500)"`
	CreatedAt     int64   `gorm:"autoCreateTime:false;not null"`
	UpdatedAt     int64   `gorm:"autoUpdateTime:false;not null"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.UID == "" {
		p.UID = uuid.New().String()
	}
	return nil
}

// PostRow is a post joined with its author and aggregated clap total.
type PostRow struct {
	PostModel
	AuthorName  string
	AuthorImage *string
	AuthorEmail string
	AuthorBio   *string
	ClapTotal   int64
}

type TagModel struct {
	UID  string `gorm:"column:uid;type:varchar(36);primaryKey"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

func (TagModel) TableName() string {
	return "tags"
}

func (t *TagModel) BeforeCreate(tx *gorm.DB) error {
	if t.UID == "" {
		t.UID = uuid.New().String()
	}
	return nil
}

type PostTagModel struct {
	PostUID string `gorm:"column:post_uid;type:varchar(36);primaryKey"`
	TagUID  string `gorm:"column:tag_uid;type:varchar(36);primaryKey;index"`
}

func (PostTagModel) TableName() string {
	return "posts_tags"
}
