package entity

type Clap struct {
	UserUID   string `json:"user_uid"`
	PostUID   string `json:"post_uid"`
	ClapCount int    `json:"clap_count"`
	CreatedAt int64  `json:"created_at"`
}

type Bookmark struct {
	UserUID   string `json:"user_uid"`
	PostUID   string `json:"post_uid"`
	CreatedAt int64  `json:"created_at"`
}
