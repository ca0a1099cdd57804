package service

import (
	"context"
	"time"

	"coachsite-be/internal/dto"
	"coachsite-be/internal/entity"
	"coachsite-be/internal/repository/unitofwork"

	gocache "github.com/patrickmn/go-cache"
)

const settingsCacheKey = "site_settings"

type ISettingsService interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewSettingsService(uowFactory unitofwork.RepositoryFactory) ISettingsService {
	return &settingsService{
		uowFactory: uowFactory,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Get returns the site settings, served from cache between updates. A
// missing row falls back to defaults so a fresh install still answers.
func (s *settingsService) Get(ctx context.Context) (*entity.Settings, error) {
	if cached, found := s.cache.Get(settingsCacheKey); found {
		return cached.(*entity.Settings), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = defaultSettings()
	}

	s.cache.Set(settingsCacheKey, settings, gocache.DefaultExpiration)
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = defaultSettings()
	}

	settings.SiteTitle = req.SiteTitle
	settings.SiteDescription = req.SiteDescription
	settings.CoachName = req.CoachName
	settings.ContactEmail = req.ContactEmail
	settings.WelcomeMessage = req.WelcomeMessage
	settings.SuggestedQuestions = req.SuggestedQuestions
	settings.MembershipPrice = req.MembershipPrice
	settings.UpdatedAt = time.Now()

	if err := uow.SettingsRepository().Upsert(ctx, settings); err != nil {
		return nil, err
	}

	s.cache.Delete(settingsCacheKey)

	return &dto.SettingsResponse{
		SiteTitle:          settings.SiteTitle,
		SiteDescription:    settings.SiteDescription,
		CoachName:          settings.CoachName,
		ContactEmail:       settings.ContactEmail,
		WelcomeMessage:     settings.WelcomeMessage,
		SuggestedQuestions: settings.SuggestedQuestions,
		MembershipPrice:    settings.MembershipPrice,
	}, nil
}

func defaultSettings() *entity.Settings {
	return &entity.Settings{
		Id:             1,
		CoachName:      "the coach",
		WelcomeMessage: "Hi! Ask me anything about coaching.",
	}
}
