package services

import (
	"context"

	"tradejournal_backend/internal/apperrors"
	"tradejournal_backend/internal/auth"
	"tradejournal_backend/internal/dto"
	"tradejournal_backend/internal/logger"
	"tradejournal_backend/internal/models"
	"tradejournal_backend/internal/repositories"

	"gorm.io/gorm"
)

// AuthService handles registration and login. Every new user starts on the
// FREE plan with an explicit subscription row.
type AuthService struct {
	userRepo repositories.UserRepository
	subRepo  repositories.SubscriptionRepository
}

func NewAuthService(userRepo repositories.UserRepository, subRepo repositories.SubscriptionRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		subRepo:  subRepo,
	}
}

// Register creates the user and its FREE subscription in one transaction.
func (s *AuthService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if exists, err := s.userRepo.ExistsByUsername(db, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	if exists, err := s.userRepo.ExistsByEmail(db, req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		// FREE, active, no end date: the stable default state.
		sub := &models.Subscription{
			UserID:   user.ID,
			PlanType: models.PlanFree,
			IsActive: true,
		}
		return s.subRepo.Create(tx, sub)
	})
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return &dto.AuthResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		PlanType: models.PlanFree,
	}, nil
}

// Login authenticates by username or email.
func (s *AuthService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(db, req.UsernameOrEmail)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	planType := models.PlanFree
	if sub, err := s.subRepo.FindByUserID(db, user.ID); err != nil {
		return nil, err
	} else if sub != nil {
		planType = sub.PlanType
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return &dto.AuthResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		PlanType: planType,
	}, nil
}
