package dto

type SettingsResponse struct {
	SiteTitle          string   `json:"site_title"`
	SiteDescription    string   `json:"site_description"`
	CoachName          string   `json:"coach_name"`
	ContactEmail       string   `json:"contact_email"`
	WelcomeMessage     string   `json:"welcome_message"`
	SuggestedQuestions []string `json:"suggested_questions"`
	MembershipPrice    int64    `json:"membership_price"`
}

type UpdateSettingsRequest struct {
	SiteTitle          string   `json:"site_title" validate:"required,max=100"`
	SiteDescription    string   `json:"site_description" validate:"max=500"`
	CoachName          string   `json:"coach_name" validate:"required,max=100"`
	ContactEmail       string   `json:"contact_email" validate:"required,email"`
	WelcomeMessage     string   `json:"welcome_message" validate:"required,max=1000"`
	SuggestedQuestions []string `json:"suggested_questions" validate:"max=10,dive,max=300"`
	MembershipPrice    int64    `json:"membership_price" validate:"gte=0"`
}
