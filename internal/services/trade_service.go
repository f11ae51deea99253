package services

import (
	"context"
	"strings"
	"time"

	"tradejournal_backend/internal/apperrors"
	"tradejournal_backend/internal/config"
	"tradejournal_backend/internal/dto"
	"tradejournal_backend/internal/logger"
	"tradejournal_backend/internal/models"
	"tradejournal_backend/internal/repositories"

	"gorm.io/gorm"
)

// TradeService is the trade ledger plus the free-plan gate in front of it.
type TradeService struct {
	tradeRepo repositories.TradeRepository
	subSvc    *SubscriptionService
	cfg       *config.Config
}

func NewTradeService(
	tradeRepo repositories.TradeRepository,
	subSvc *SubscriptionService,
	cfg *config.Config,
) *TradeService {
	return &TradeService{
		tradeRepo: tradeRepo,
		subSvc:    subSvc,
		cfg:       cfg,
	}
}

// CreateTrade records a closed trade. The quota check and the insert run in
// one transaction so concurrent writes from the same user cannot both pass
// the check and jointly exceed the free-plan limit.
func (s *TradeService) CreateTrade(ctx context.Context, db *gorm.DB, userID string, req *dto.TradeRequest) (*dto.TradeResponse, error) {
	tradeType := models.TradeType(strings.ToUpper(req.TradeType))
	if tradeType != models.TradeTypeBuy && tradeType != models.TradeTypeSell {
		return nil, apperrors.ErrInvalidTradeType
	}

	tradeDate, err := time.Parse(dto.DateLayout, req.TradeDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid trade date. Use YYYY-MM-DD")
	}

	lotSize := 1
	if req.LotSize != nil {
		lotSize = *req.LotSize
	}

	trade := &models.Trade{
		UserID:     userID,
		Instrument: req.Instrument,
		TradeType:  tradeType,
		EntryPrice: req.EntryPrice,
		ExitPrice:  req.ExitPrice,
		Quantity:   req.Quantity,
		LotSize:    lotSize,
		TradeDate:  tradeDate,
		Notes:      req.Notes,
		ProfitLoss: models.ComputeProfitLoss(tradeType, req.EntryPrice, req.ExitPrice, req.Quantity, lotSize),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkTradeQuota(tx, userID); err != nil {
			return err
		}
		return s.tradeRepo.Create(tx, trade)
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "trade recorded",
		"trade_id", trade.ID, "instrument", trade.Instrument, "profit_loss", trade.ProfitLoss.String())
	return dto.NewTradeResponse(trade), nil
}

// checkTradeQuota denies the write when a non-PRO user already holds the
// configured number of trades. Must run inside the insert transaction.
func (s *TradeService) checkTradeQuota(tx *gorm.DB, userID string) error {
	isPro, err := s.subSvc.IsProUser(tx, userID)
	if err != nil {
		return err
	}
	if isPro {
		return nil
	}

	count, err := s.tradeRepo.CountByUserID(tx, userID)
	if err != nil {
		return err
	}
	if count >= int64(s.cfg.Subscription.FreeTradeLimit) {
		return apperrors.ErrTradeQuota
	}
	return nil
}

// GetAllTrades lists the user's trades, newest trade date first.
func (s *TradeService) GetAllTrades(db *gorm.DB, userID string) ([]dto.TradeResponse, error) {
	trades, err := s.tradeRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewTradeResponseList(trades), nil
}

// GetTradesByDateRange lists trades with trade dates inside the inclusive
// [start, end] range.
func (s *TradeService) GetTradesByDateRange(db *gorm.DB, userID string, q *dto.DateRangeQuery) ([]dto.TradeResponse, error) {
	start, err := time.Parse(dto.DateLayout, q.StartDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid start_date. Use YYYY-MM-DD")
	}
	end, err := time.Parse(dto.DateLayout, q.EndDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid end_date. Use YYYY-MM-DD")
	}

	trades, err := s.tradeRepo.FindByUserIDAndDateRange(db, userID, start, end)
	if err != nil {
		return nil, err
	}
	return dto.NewTradeResponseList(trades), nil
}

// DeleteTrade removes a trade permanently. Only the owner may delete it.
func (s *TradeService) DeleteTrade(ctx context.Context, db *gorm.DB, userID, tradeID string) error {
	trade, err := s.tradeRepo.FindByID(db, tradeID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTradeNotFound) {
			return apperrors.ErrTradeNotFound
		}
		return err
	}

	if trade.UserID != userID {
		return apperrors.ErrTradeNotOwned
	}

	if err := s.tradeRepo.Delete(db, trade); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "trade deleted", "trade_id", tradeID)
	return nil
}
