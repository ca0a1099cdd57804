package contract

import (
	"context"

	"coachsite-be/internal/entity"
)

// SettingsRepository reads and writes the single site settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Upsert(ctx context.Context, settings *entity.Settings) error
}
