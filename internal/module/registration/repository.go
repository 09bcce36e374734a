package registration

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines the interface for team persistence. Teams are write-once:
// there is deliberately no update or delete operation.
type Repository interface {
	Create(ctx context.Context, team *Team) error
	ListAll(ctx context.Context) ([]*Team, error)
	Count(ctx context.Context) (int64, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new team repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create persists a team and its members in one transaction.
func (r *repository) Create(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// ListAll returns every team, newest first, members in form order.
func (r *repository) ListAll(ctx context.Context) ([]*Team, error) {
	var teams []*Team
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_members.position ASC")
		}).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// Count returns the number of registered teams.
func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Team{}).Count(&count).Error
	return count, err
}
