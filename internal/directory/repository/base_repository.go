package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/mams-platform/mams/internal/directory/domain"
)

// GormBaseRepository implements BaseRepository using GORM
type GormBaseRepository struct {
	db *gorm.DB
}

// NewGormBaseRepository creates a new GORM base repository
func NewGormBaseRepository(db *gorm.DB) *GormBaseRepository {
	return &GormBaseRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormBaseRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Base{})
}

func (r *GormBaseRepository) Create(base *domain.Base) error {
	if err := r.db.Create(base).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrBaseNameTaken
		}
		return fmt.Errorf("failed to create base: %w", err)
	}
	return nil
}

func (r *GormBaseRepository) FindByID(id uint) (*domain.Base, error) {
	var base domain.Base
	if err := r.db.First(&base, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBaseNotFound
		}
		return nil, fmt.Errorf("failed to find base: %w", err)
	}
	return &base, nil
}

func (r *GormBaseRepository) FindAll() ([]domain.Base, error) {
	var bases []domain.Base
	if err := r.db.Order("name ASC").Find(&bases).Error; err != nil {
		return nil, fmt.Errorf("failed to list bases: %w", err)
	}
	return bases, nil
}
