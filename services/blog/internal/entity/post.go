package entity

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

type Post struct {
	UID           string         `json:"uid"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	AuthorUID     string         `json:"author_uid"`
	Status        PostStatus     `json:"status"`
	FeaturedImage *string        `json:"featured_image"`
	CreatedAt     int64          `json:"created_at"`
	UpdatedAt     int64          `json:"updated_at"`
	Tags          []string       `json:"tags"`
	ClapTotal     int64          `json:"clap_total"`
	AuthorName    string         `json:"author_name,omitempty"`
	AuthorImage   *string        `json:"author_image,omitempty"`
	Author        *AuthorSummary `json:"author,omitempty"`
}

type AuthorSummary struct {
	UID          string  `json:"uid"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profile_image"`
	Bio          *string `json:"bio"`
}

// PostInput holds the fields accepted when creating a post.
type PostInput struct {
	Title         string
	Content       string
	Status        PostStatus
	FeaturedImage *string
	Tags          []string
}

// PostUpdate is a partial update. Nil fields keep their stored value; a nil
// Tags leaves the tag set untouched while an empty slice clears it.
type PostUpdate struct {
	Title         *string
	Content       *string
	Status        *PostStatus
	FeaturedImage *string
	Tags          *[]string
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type PostFilter struct {
	Search string
	Tag    string
	Page   int
	Limit  int
}

// Normalize replaces out-of-range paging values with the defaults and caps
// the page size.
func (f PostFilter) Normalize() PostFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

func (f PostFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	UserUID string
	IsAdmin bool
}

// CanModify reports whether the actor owns the resource or is an admin.
func (a Actor) CanModify(ownerUID string) bool {
	return a.IsAdmin || (a.UserUID != "" && a.UserUID == ownerUID)
}

// DedupeTags drops empty and repeated ids while keeping first-seen order.
func DedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
