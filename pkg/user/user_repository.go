package user

import (
	"Moon-Trade-Backend/entities"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	UserRepository interface {
		// Upsert inserts the profile, or refreshes the display name when
		// the email is already registered.
		Upsert(ctx context.Context, profile *entities.Profile) error
		GetByEmail(ctx context.Context, email string) (*entities.Profile, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Upsert(ctx context.Context, profile *entities.Profile) error {
	now := time.Now()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.Language == "" {
		profile.Language = "en"
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":       profile.Name,
				"updated_at": now,
			}),
		}).
		Create(profile).Error
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
