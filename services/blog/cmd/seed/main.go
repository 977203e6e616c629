package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/logger"
	"inkwell/pkg/s3"
	"inkwell/services/blog/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedTags = []string{"go", "databases", "distributed-systems", "career", "writing"}

var seedUsers = []struct {
	name     string
	email    string
	password string
	isAdmin  bool
}{
	{"Alice Writer", "alice@test.com", "password123", true},
	{"Bob Reader", "bob@test.com", "password123", false},
	{"Charlie Coder", "charlie@test.com", "password123", false},
}

func main() {
	var withImages bool
	flag.BoolVar(&withImages, "images", false, "Fetch featured images and upload them to S3")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	var s3Client *s3.Client
	if withImages {
		s3Client, err = s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
	}

	if err := seedDatabase(db, s3Client, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, log *logger.Logger) error {
	tagUIDs, err := seedTagRows(db)
	if err != nil {
		return err
	}
	log.Info("Seeded %d tags", len(tagUIDs))

	httpClient := &http.Client{Timeout: 30 * time.Second}
	now := time.Now().Unix()

	userUIDs := make([]string, 0, len(seedUsers))
	for i, userData := range seedUsers {
		var existing model.UserModel
		if err := db.Where("email = ?", userData.email).First(&existing).Error; err == nil {
			log.Info("User %s already exists, skipping", userData.email)
			userUIDs = append(userUIDs, existing.UID)
			continue
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &model.UserModel{
			Name:         userData.name,
			Email:        userData.email,
			PasswordHash: string(hashedPassword),
			IsAdmin:      userData.isAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", userData.email, err)
			continue
		}
		log.Info("Created user: %s (%s)", user.Name, user.Email)
		userUIDs = append(userUIDs, user.UID)

		for j := 0; j < 3; j++ {
			post := &model.PostModel{
				Title:     fmt.Sprintf("%s on %s, part %d", userData.name, seedTags[(i+j)%len(seedTags)], j+1),
				Content:   fmt.Sprintf("Notes from %s about %s.", userData.name, seedTags[(i+j)%len(seedTags)]),
				AuthorUID: user.UID,
				Status:    "published",
				CreatedAt: now + int64(i*10+j),
				UpdatedAt: now + int64(i*10+j),
			}
			if j == 2 {
				post.Status = "draft"
			}
			if s3Client != nil {
				url, err := uploadFeaturedImage(httpClient, s3Client, user.UID, j, log)
				if err != nil {
					log.Warn("Skipping featured image: %v", err)
				} else {
					post.FeaturedImage = &url
				}
			}

			if err := db.Create(post).Error; err != nil {
				log.Error("Failed to create post for %s: %v", userData.email, err)
				continue
			}

			links := []model.PostTagModel{
				{PostUID: post.UID, TagUID: tagUIDs[(i+j)%len(tagUIDs)]},
				{PostUID: post.UID, TagUID: tagUIDs[(i+j+1)%len(tagUIDs)]},
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				log.Error("Failed to tag post %s: %v", post.UID, err)
			}
		}
	}

	return seedEngagement(db, userUIDs, now, log)
}

func seedTagRows(db *gorm.DB) ([]string, error) {
	tags := make([]model.TagModel, 0, len(seedTags))
	for _, name := range seedTags {
		tags = append(tags, model.TagModel{Name: name})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to create tags: %w", err)
	}

	var uids []string
	if err := db.Model(&model.TagModel{}).Where("name IN ?", seedTags).Order("name ASC").Pluck("uid", &uids).Error; err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	if len(uids) == 0 {
		return nil, fmt.Errorf("no tags available")
	}
	return uids, nil
}

// seedEngagement has every user clap for and bookmark the other users'
// published posts.
func seedEngagement(db *gorm.DB, userUIDs []string, now int64, log *logger.Logger) error {
	for _, userUID := range userUIDs {
		var postUIDs []string
		if err := db.Model(&model.PostModel{}).
			Where("author_uid <> ? AND status = ?", userUID, "published").
			Pluck("uid", &postUIDs).Error; err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}

		for i, postUID := range postUIDs {
			clap := model.ClapModel{UserUID: userUID, PostUID: postUID, ClapCount: i%5 + 1, CreatedAt: now}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&clap).Error; err != nil {
				log.Error("Failed to create clap: %v", err)
			}
			if i%2 == 0 {
				bookmark := model.BookmarkModel{UserUID: userUID, PostUID: postUID, CreatedAt: now}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&bookmark).Error; err != nil {
					log.Error("Failed to create bookmark: %v", err)
				}
			}
		}
	}

	log.Info("Created claps and bookmarks for %d users", len(userUIDs))
	return nil
}

func uploadFeaturedImage(httpClient *http.Client, s3Client *s3.Client, userUID string, index int, log *logger.Logger) (string, error) {
	imageURL := fmt.Sprintf("https://picsum.photos/seed/%s-%d/1200/630", userUID, index)

	log.Info("Fetching image from %s", imageURL)
	resp, err := httpClient.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image source returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("received empty image data")
	}

	fileKey := fmt.Sprintf("posts/%s/seed_%d.jpg", userUID, index)
	url, err := s3Client.UploadFile(fileKey, bytes.NewReader(imageData), "image/jpeg")
	if err != nil {
		return "", err
	}

	log.Info("Image uploaded successfully: %s", url)
	return url, nil
}
