package service

import (
	"context"
	"fmt"
	"time"

	"ai-agenthub-be/internal/dto"
	"ai-agenthub-be/internal/pkg/limiter"
	"ai-agenthub-be/internal/repository/specification"
	"ai-agenthub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	DeleteAccount(ctx context.Context, userId uuid.UUID) error
	GetUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error)
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	dailyLimiter   limiter.IDailyLimiter
	chatDailyLimit int
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, dailyLimiter limiter.IDailyLimiter, chatDailyLimit int) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		dailyLimiter:   dailyLimiter,
		chatDailyLimit: chatDailyLimit,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	user.FullName = req.FullName
	if req.Email != "" {
		user.Email = req.Email
	}
	user.UpdatedAt = time.Now()

	return uow.UserRepository().Update(ctx, user)
}

func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	return uow.UserRepository().Delete(ctx, userId)
}

func (s *userService) GetUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	remaining, err := s.dailyLimiter.Remaining(ctx, userId.String(), s.chatDailyLimit)
	if err != nil {
		return nil, err
	}

	res := &dto.UsageStatusResponse{
		ChatDailyLimit: s.chatDailyLimit,
		ChatRemaining:  remaining,
	}

	if s.chatDailyLimit > 0 {
		resetsAt := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		res.ResetsAt = &resetsAt
	}

	return res, nil
}
