package services

import (
	"context"
	"stash/internal/backend"
	"stash/internal/models"
	"stash/internal/providers"

	json "github.com/goccy/go-json"
)

type ProfileServiceInterface interface {
	Get(ctx context.Context, username string) (*models.UserProfile, error)
	SetPersonality(username string, personality models.SpendingPersonality) bool
	Forget(username string)
}

// ProfileService keeps the display profile of each persona in the cache so
// the dashboard does not refetch it on every render.
type ProfileService struct {
	backend backend.ClientInterface
	cache   providers.CacheProviderInterface
	logger  providers.Logger
}

func NewProfileService(client backend.ClientInterface, cache providers.CacheProviderInterface, logger providers.Logger) ProfileServiceInterface {
	return &ProfileService{backend: client, cache: cache, logger: logger}
}

func profileCacheKey(username string) string {
	return "profile:" + username
}

func (ps *ProfileService) cached(username string) (*models.UserProfile, bool) {
	raw, ok := ps.cache.Get(profileCacheKey(username))
	if !ok {
		return nil, false
	}
	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		ps.logger.Warnf(providers.TypeApp, "Dropping unreadable cached profile for %s: %s", username, err)
		ps.cache.Del(profileCacheKey(username))
		return nil, false
	}
	return &profile, true
}

func (ps *ProfileService) store(profile *models.UserProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		ps.logger.Errorf(providers.TypeApp, "Failed to encode profile for %s: %s", profile.Username, err)
		return
	}
	ps.cache.Set(profileCacheKey(profile.Username), data)
}

func (ps *ProfileService) Get(ctx context.Context, username string) (*models.UserProfile, error) {
	if profile, ok := ps.cached(username); ok {
		return profile, nil
	}
	profile, err := ps.backend.GetUserProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile.Username == "" {
		profile.Username = username
	}
	ps.store(profile)
	return profile, nil
}

// SetPersonality patches the cached profile; it does nothing and returns
// false when no profile is cached.
func (ps *ProfileService) SetPersonality(username string, personality models.SpendingPersonality) bool {
	profile, ok := ps.cached(username)
	if !ok {
		return false
	}
	profile.SpendingPersonality = personality
	ps.store(profile)
	return true
}

func (ps *ProfileService) Forget(username string) {
	ps.cache.Del(profileCacheKey(username))
}
