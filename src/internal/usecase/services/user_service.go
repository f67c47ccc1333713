package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/splitpay-ledger/src/internal/commons"
	"github.com/api-sage/splitpay-ledger/src/internal/domain"
	"github.com/api-sage/splitpay-ledger/src/internal/logger"
	"github.com/api-sage/splitpay-ledger/src/internal/usecase/service_interfaces"
)

// Verify that UserService implements the service_interfaces.UserService interface
var _ service_interfaces.UserService = (*UserService)(nil)

type UserService struct {
	userRepo domain.UserRepository
}

func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (commons.Response[models.CreateUserResponse], error) {
	logger.Info("user service create user request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("user service create user validation failed", err, nil)
		return commons.ErrorResponse[models.CreateUserResponse]("validation failed", err.Error()), err
	}

	var pinHash string
	if pin := strings.TrimSpace(req.TransactionPin); pin != "" {
		hashed, err := hashTransactionPin(pin)
		if err != nil {
			logger.Error("user service create user hash pin failed", err, nil)
			return commons.ErrorResponse[models.CreateUserResponse]("failed to create user", "failed to hash transaction pin"), err
		}
		pinHash = hashed
	}

	user := domain.User{
		Email:              strings.TrimSpace(req.Email),
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Occupation:         strings.TrimSpace(req.Occupation),
		TransactionPinHash: pinHash,
		CreatedAt:          time.Now().UTC(),
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		logger.Error("user service create user repository failed", err, logger.Fields{
			"email": user.Email,
		})
		return commons.ErrorResponse[models.CreateUserResponse]("failed to create user", "Unable to create user right now"), err
	}

	response := models.CreateUserResponse{
		Email:     created.Email,
		FirstName: created.FirstName,
		LastName:  created.LastName,
	}

	logger.Info("user service create user success", logger.Fields{
		"email":     response.Email,
		"firstName": response.FirstName,
		"lastName":  response.LastName,
	})

	return commons.SuccessResponse("user created successfully", response), nil
}

func (s *UserService) GetUser(ctx context.Context, email string) (commons.Response[models.GetUserResponse], error) {
	logger.Info("user service get user request", logger.Fields{
		"email": email,
	})

	if strings.TrimSpace(email) == "" {
		return commons.ErrorResponse[models.GetUserResponse]("validation failed", "email is required"), fmt.Errorf("email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("user service get user failed", err, logger.Fields{
			"email": email,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.GetUserResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.GetUserResponse]("failed to get user", "Unable to fetch user right now"), err
	}

	response := models.GetUserResponse{
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Occupation: user.Occupation,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	}

	return commons.SuccessResponse("user fetched successfully", response), nil
}

func hashTransactionPin(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash transaction pin: %w", err)
	}
	return string(hashed), nil
}

func verifyTransactionPin(hash, pin string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
}
