// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// BuildUser constructs a user with a synthetic external identity, as if
// the identity provider had just delivered a user.created event.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	user := &models.User{
		ExternalID:  "user_" + uuid.NewString(),
		Username:    gofakeit.Username(),
		Avatar:      fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		Cover:       fmt.Sprintf("https://picsum.photos/seed/%s/1200/400", gofakeit.UUID()),
		Name:        gofakeit.FirstName(),
		Surname:     gofakeit.LastName(),
		Description: gofakeit.Sentence(8),
		City:        gofakeit.City(),
		School:      gofakeit.Company() + " University",
		Work:        gofakeit.Company(),
		Website:     gofakeit.URL(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser persists a generated user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post with a realistic created_at spread over
// the past maxDays days.
func (f *Factory) BuildPost(user *models.User, maxDays int, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Body:   gofakeit.Paragraph(1, 2, 8, " "),
		UserID: user.ID,
	}
	if f.r.Intn(2) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// BuildComment constructs a comment on a post.
func (f *Factory) BuildComment(user *models.User, post *models.Post) *models.Comment {
	return &models.Comment{
		Body:   gofakeit.Sentence(f.r.Intn(10) + 3),
		UserID: user.ID,
		PostID: post.ID,
	}
}

// BuildStory constructs an unexpired story for a user.
func (f *Factory) BuildStory(user *models.User) *models.Story {
	created := time.Now().Add(-time.Duration(f.r.Intn(20)) * time.Hour)
	return &models.Story{
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/1080/1920", gofakeit.UUID()),
		UserID:    user.ID,
		CreatedAt: created,
		ExpiresAt: created.Add(models.StoryLifetime),
	}
}
