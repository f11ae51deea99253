package repositories

import (
	"errors"

	"tradejournal_backend/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	// FindByUserID returns (nil, nil) when the user has no subscription row;
	// the absent row is a valid state (implicit FREE).
	FindByUserID(db *gorm.DB, userID string) (*models.Subscription, error)
	Create(db *gorm.DB, sub *models.Subscription) error
	Save(db *gorm.DB, sub *models.Subscription) error
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := db.First(&sub, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, sub *models.Subscription) error {
	return db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) Save(db *gorm.DB, sub *models.Subscription) error {
	return db.Save(sub).Error
}
