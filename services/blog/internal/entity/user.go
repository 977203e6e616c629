package entity

type User struct {
	UID          string            `json:"uid"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"-"`
	ProfileImage *string           `json:"profile_image"`
	Bio          *string           `json:"bio"`
	SocialLinks  map[string]string `json:"social_links"`
	IsAdmin      bool              `json:"is_admin"`
	CreatedAt    int64             `json:"created_at"`
	UpdatedAt    int64             `json:"updated_at"`
}

type UserUpdate struct {
	Name         *string
	Bio          *string
	ProfileImage *string
	SocialLinks  map[string]string
}

type PasswordReset struct {
	UserEmail string `json:"user_email"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"created_at"`
	ExpireAt  int64  `json:"expire_at"`
}
