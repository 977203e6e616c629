package model

type ClapModel struct {
	UserUID   string `gorm:"column:user_uid;type:varchar(36);primaryKey"`
	PostUID   string `gorm:"column:post_uid;type:varchar(36);primaryKey;index"`
	ClapCount int    `gorm:"type:bigint;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:false;not null"`
}

func (ClapModel) TableName() string {
	return "claps"
}

type BookmarkModel struct {
	UserUID   string `gorm:"column:user_uid;type:varchar(36);primaryKey"`
	PostUID   string `gorm:"column:post_uid;type:varchar(36);primaryKey;index"`
	CreatedAt int64  `gorm:"autoCreateTime:false;not null"`
}

func (BookmarkModel) TableName() string {
	return "bookmarks"
}
