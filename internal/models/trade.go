package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Trade struct {
	BaseModel
	UserID     string          `gorm:"type:uuid;index;not null" json:"userId"`
	Instrument string          `gorm:"not null" json:"instrument"`
	TradeType  TradeType       `gorm:"type:varchar(10);not null" json:"tradeType"`
	EntryPrice decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"entryPrice"`
	ExitPrice  decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"exitPrice"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	LotSize    int             `gorm:"default:1" json:"lotSize"`
	TradeDate  time.Time       `gorm:"type:date;index;not null" json:"tradeDate"`
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	ProfitLoss decimal.Decimal `gorm:"type:decimal(19,2)" json:"profitLoss"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ComputeProfitLoss derives the profit or loss of a closed trade.
// BUY:  (exit - entry) * quantity * lotSize
// SELL: (entry - exit) * quantity * lotSize
// It is the only place the formula lives; every write path calls it so the
// stored value can never drift from the inputs.
func ComputeProfitLoss(tradeType TradeType, entry, exit decimal.Decimal, quantity, lotSize int) decimal.Decimal {
	totalQty := decimal.NewFromInt(int64(quantity) * int64(lotSize))
	if tradeType == TradeTypeSell {
		return entry.Sub(exit).Mul(totalQty)
	}
	return exit.Sub(entry).Mul(totalQty)
}
