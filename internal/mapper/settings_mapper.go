package mapper

import (
	"encoding/json"

	"coachsite-be/internal/entity"
	"coachsite-be/internal/model"

	"gorm.io/datatypes"
)

type SettingsMapper struct{}

func NewSettingsMapper() *SettingsMapper {
	return &SettingsMapper{}
}

func (m *SettingsMapper) ToEntity(e *model.Settings) *entity.Settings {
	if e == nil {
		return nil
	}

	var questions []string
	if len(e.SuggestedQuestions) > 0 {
		_ = json.Unmarshal(e.SuggestedQuestions, &questions)
	}

	return &entity.Settings{
		Id:                 e.Id,
		SiteTitle:          e.SiteTitle,
		SiteDescription:    e.SiteDescription,
		CoachName:          e.CoachName,
		ContactEmail:       e.ContactEmail,
		MembershipPrice:    e.MembershipPrice,
		WelcomeMessage:     e.WelcomeMessage,
		SuggestedQuestions: questions,
		UpdatedAt:          e.UpdatedAt,
	}
}

func (m *SettingsMapper) ToModel(e *entity.Settings) *model.Settings {
	if e == nil {
		return nil
	}

	var questions datatypes.JSON
	if e.SuggestedQuestions != nil {
		if raw, err := json.Marshal(e.SuggestedQuestions); err == nil {
			questions = raw
		}
	}

	return &model.Settings{
		Id:                 e.Id,
		SiteTitle:          e.SiteTitle,
		SiteDescription:    e.SiteDescription,
		CoachName:          e.CoachName,
		ContactEmail:       e.ContactEmail,
		MembershipPrice:    e.MembershipPrice,
		WelcomeMessage:     e.WelcomeMessage,
		SuggestedQuestions: questions,
		UpdatedAt:          e.UpdatedAt,
	}
}
