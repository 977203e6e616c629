package entity

type Comment struct {
	UID              string  `json:"uid"`
	PostUID          string  `json:"post_uid"`
	UserUID          string  `json:"user_uid"`
	Content          string  `json:"content"`
	ParentCommentUID *string `json:"parent_comment_uid"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`
	UserName         string  `json:"user_name,omitempty"`
	UserImage        *string `json:"user_image,omitempty"`
}
