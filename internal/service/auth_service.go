package service

import (
	"context"
	"fmt"
	"time"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"

	"github.com/google/uuid"
)

const csrfTTL = 8 * time.Hour

// AuthServiceImpl implements ports.AuthService for admin operators.
type AuthServiceImpl struct {
	operatorRepo ports.OperatorRepository
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	csrfStore    ports.CSRFStore
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	operatorRepo ports.OperatorRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	csrfStore ports.CSRFStore,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		operatorRepo: operatorRepo,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		csrfStore:    csrfStore,
	}
}

// Login validates credentials and issues the JWT + CSRF token pair.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	op, err := s.operatorRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find operator: %w", err))
	}
	if op == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, op.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredentials()
	}

	if !op.IsActive() {
		return nil, apperror.ErrOperatorSuspended()
	}

	token, expiry, err := s.tokenSvc.Generate(op.ID, op.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	csrfToken, err := s.csrfStore.Issue(ctx, op.ID.String(), csrfTTL)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("issue csrf token: %w", err))
	}

	return &ports.LoginResult{
		Token:     token,
		CSRFToken: csrfToken,
		ExpiresAt: expiry,
	}, nil
}

// CreateOperator creates an admin operator with a hashed password.
func (s *AuthServiceImpl) CreateOperator(ctx context.Context, username, password string) (*domain.Operator, error) {
	existing, err := s.operatorRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.Validation("username already exists")
	}

	passwordHash, err := s.hashSvc.Hash(password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	op := &domain.Operator{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.operatorRepo.Create(ctx, op); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create operator: %w", err))
	}
	return op, nil
}
