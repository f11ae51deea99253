package repositories

import (
	"errors"
	"time"

	"tradejournal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTradeNotFound = errors.New("trade not found")
)

// tradeOrder sorts by trade date descending; same-date ties resolve to the
// most recent write first.
const tradeOrder = "trade_date DESC, created_at DESC, id DESC"

type TradeRepository interface {
	Create(db *gorm.DB, trade *models.Trade) error
	Save(db *gorm.DB, trade *models.Trade) error
	FindByID(db *gorm.DB, id string) (*models.Trade, error)
	FindByUserID(db *gorm.DB, userID string) ([]models.Trade, error)
	FindByUserIDAndDateRange(db *gorm.DB, userID string, start, end time.Time) ([]models.Trade, error)
	CountByUserID(db *gorm.DB, userID string) (int64, error)
	Delete(db *gorm.DB, trade *models.Trade) error
}

type TradeRepositoryImpl struct{}

func NewTradeRepository() TradeRepository {
	return &TradeRepositoryImpl{}
}

func (r *TradeRepositoryImpl) Create(db *gorm.DB, trade *models.Trade) error {
	return db.Create(trade).Error
}

// Save persists all fields of an existing trade. No handler exposes trade
// updates today; the method exists for the repository to be complete and for
// future edit support.
func (r *TradeRepositoryImpl) Save(db *gorm.DB, trade *models.Trade) error {
	return db.Save(trade).Error
}

func (r *TradeRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Trade, error) {
	var trade models.Trade
	if err := db.First(&trade, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, err
	}
	return &trade, nil
}

func (r *TradeRepositoryImpl) FindByUserID(db *gorm.DB, userID string) ([]models.Trade, error) {
	var trades []models.Trade
	err := db.Where("user_id = ?", userID).
		Order(tradeOrder).
		Find(&trades).Error
	return trades, err
}

func (r *TradeRepositoryImpl) FindByUserIDAndDateRange(db *gorm.DB, userID string, start, end time.Time) ([]models.Trade, error) {
	var trades []models.Trade
	err := db.Where("user_id = ? AND trade_date BETWEEN ? AND ?", userID, start, end).
		Order(tradeOrder).
		Find(&trades).Error
	return trades, err
}

func (r *TradeRepositoryImpl) CountByUserID(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Trade{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *TradeRepositoryImpl) Delete(db *gorm.DB, trade *models.Trade) error {
	return db.Delete(trade).Error
}
