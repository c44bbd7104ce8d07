package repository

import (
	"github.com/yukikurage/dashboard-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *GormEventRepository) FindByIDForUser(id, userID uint64) (*models.Event, error) {
	var event models.Event
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *GormEventRepository) ListByUser(userID uint64) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.Where("user_id = ?", userID).
		Order("date ASC").
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *GormEventRepository) DeleteForUser(id, userID uint64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
