package persistent

import (
	"encoding/json"

	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	return &entity.Post{
		UID:           m.UID,
		Title:         m.Title,
		Content:       m.Content,
		AuthorUID:     m.AuthorUID,
		Status:        entity.PostStatus(m.Status),
		FeaturedImage: m.FeaturedImage,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Tags:          []string{},
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	return &model.PostModel{
		UID:           e.UID,
		Title:         e.Title,
		Content:       e.Content,
		AuthorUID:     e.AuthorUID,
		Status:        string(e.Status),
		FeaturedImage: e.FeaturedImage,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func rowToPostEntity(row *model.PostRow) *entity.Post {
	post := ToPostEntity(&row.PostModel)
	post.AuthorName = row.AuthorName
	post.AuthorImage = row.AuthorImage
	post.ClapTotal = row.ClapTotal
	return post
}

// rowToPostDetail nests the author fields under Author instead of the flat
// listing columns.
func rowToPostDetail(row *model.PostRow) *entity.Post {
	post := ToPostEntity(&row.PostModel)
	post.ClapTotal = row.ClapTotal
	post.Author = &entity.AuthorSummary{
		UID:          row.AuthorUID,
		Name:         row.AuthorName,
		Email:        row.AuthorEmail,
		ProfileImage: row.AuthorImage,
		Bio:          row.AuthorBio,
	}
	return post
}

func ToTagEntity(m *model.TagModel) *entity.Tag {
	return &entity.Tag{UID: m.UID, Name: m.Name}
}

func ToClapEntity(m *model.ClapModel) *entity.Clap {
	return &entity.Clap{
		UserUID:   m.UserUID,
		PostUID:   m.PostUID,
		ClapCount: m.ClapCount,
		CreatedAt: m.CreatedAt,
	}
}

func ToBookmarkEntity(m *model.BookmarkModel) *entity.Bookmark {
	return &entity.Bookmark{
		UserUID:   m.UserUID,
		PostUID:   m.PostUID,
		CreatedAt: m.CreatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	return &entity.Comment{
		UID:              m.UID,
		PostUID:          m.PostUID,
		UserUID:          m.UserUID,
		Content:          m.Content,
		ParentCommentUID: m.ParentCommentUID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	return &model.CommentModel{
		UID:              e.UID,
		PostUID:          e.PostUID,
		UserUID:          e.UserUID,
		Content:          e.Content,
		ParentCommentUID: e.ParentCommentUID,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func ToReportEntity(m *model.ReportModel) *entity.Report {
	return &entity.Report{
		UID:           m.UID,
		ReportType:    entity.ReportType(m.ReportType),
		ObjectUID:     m.ObjectUID,
		ReportedByUID: m.ReportedByUID,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
}

func ToReportModel(e *entity.Report) *model.ReportModel {
	return &model.ReportModel{
		UID:           e.UID,
		ReportType:    string(e.ReportType),
		ObjectUID:     e.ObjectUID,
		ReportedByUID: e.ReportedByUID,
		Reason:        e.Reason,
		CreatedAt:     e.CreatedAt,
	}
}

// ToUserEntity decodes social_links leniently: a malformed document yields
// an empty map rather than failing the read.
func ToUserEntity(m *model.UserModel) *entity.User {
	links := map[string]string{}
	if len(m.SocialLinks) > 0 {
		_ = json.Unmarshal(m.SocialLinks, &links)
	}
	return &entity.User{
		UID:          m.UID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		ProfileImage: m.ProfileImage,
		Bio:          m.Bio,
		SocialLinks:  links,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) (*model.UserModel, error) {
	m := &model.UserModel{
		UID:          e.UID,
		Name:         e.Name,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		ProfileImage: e.ProfileImage,
		Bio:          e.Bio,
		IsAdmin:      e.IsAdmin,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.SocialLinks != nil {
		links, err := json.Marshal(e.SocialLinks)
		if err != nil {
			return nil, err
		}
		m.SocialLinks = links
	}
	return m, nil
}

func ToPasswordResetModel(e *entity.PasswordReset) *model.PasswordResetModel {
	return &model.PasswordResetModel{
		UserEmail: e.UserEmail,
		Token:     e.Token,
		CreatedAt: e.CreatedAt,
		ExpireAt:  e.ExpireAt,
	}
}
