package service

import (
	"context"
	"net/url"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// ProfileService provides profile read/update business logic.
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// UpdateProfileInput carries optional profile fields. Empty values are
// dropped from the update, never written: absent means "leave as is".
type UpdateProfileInput struct {
	Identity    string
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Description string `json:"description"`
	City        string `json:"city"`
	School      string `json:"school"`
	Work        string `json:"work"`
	Website     string `json:"website"`
	Cover       string `json:"cover"`
}

// ProfileCard is the aggregated profile view.
type ProfileCard struct {
	User   models.User           `json:"user"`
	Counts repository.UserCounts `json:"counts"`
}

const (
	maxShortFieldLen  = 60
	maxDescriptionLen = 255
)

// UpdateProfile validates every provided field before any write; a
// single malformed field fails the whole update with nothing mutated.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	fields := make(map[string]interface{})

	shortFields := map[string]string{
		"name":    in.Name,
		"surname": in.Surname,
		"city":    in.City,
		"school":  in.School,
		"work":    in.Work,
	}
	for column, value := range shortFields {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if len(value) > maxShortFieldLen {
			return nil, models.NewValidationError("Field " + column + " too long (max 60 characters)")
		}
		fields[column] = value
	}

	if desc := strings.TrimSpace(in.Description); desc != "" {
		if len(desc) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 255 characters)")
		}
		fields["description"] = desc
	}

	if site := strings.TrimSpace(in.Website); site != "" {
		parsed, err := url.ParseRequestURI(site)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return nil, models.NewValidationError("Website must be a valid URL")
		}
		fields["website"] = site
	}

	if cover := strings.TrimSpace(in.Cover); cover != "" {
		fields["cover"] = cover
	}

	actor, err := resolveActor(ctx, s.userRepo, in.Identity)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		// Keyed by the external reference, like the provisioning webhook.
		if err := s.userRepo.UpdateProfile(ctx, actor.ExternalID, fields); err != nil {
			return nil, err
		}
		cache.InvalidateProfile(ctx, actor.Username)
	}

	return s.userRepo.GetByExternalID(ctx, actor.ExternalID)
}

// Profile returns the aggregated profile card for a username,
// cache-aside cached.
func (s *ProfileService) Profile(ctx context.Context, username string) (*ProfileCard, error) {
	var card ProfileCard
	err := cache.Aside(ctx, cache.ProfileKey(username), &card, cache.ProfileTTL, func() error {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		counts, err := s.userRepo.GetCounts(ctx, user.ID)
		if err != nil {
			return err
		}
		card = ProfileCard{User: *user, Counts: *counts}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}
