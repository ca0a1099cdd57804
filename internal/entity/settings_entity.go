package entity

import "time"

// Settings is the single site-wide configuration record. CoachName is the
// persona identity injected into the prompt composer; it is never duplicated
// at call sites.
type Settings struct {
	Id                 int
	SiteTitle          string
	SiteDescription    string
	CoachName          string
	ContactEmail       string
	MembershipPrice    int64
	WelcomeMessage     string
	SuggestedQuestions []string
	UpdatedAt          time.Time
}
