package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coursehub/internal/apperror"
	"coursehub/internal/auth"
	"coursehub/internal/metrics"
	"coursehub/internal/models"
	"coursehub/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
}

type authService struct {
	repo    repository.UserRepository
	hasher  *auth.Hasher
	tokens  *auth.TokenService
	metrics *metrics.Metrics
	logger  *zap.Logger

	// decoyDigest is compared against when the account does not exist.
	decoyDigest string
}

const decoyPassword = "decoy-password-for-missing-accounts"

// NewAuthService builds the service and prepares the decoy digest used to
// keep failed logins for unknown emails as slow as wrong passwords.
func NewAuthService(repo repository.UserRepository, hasher *auth.Hasher, tokens *auth.TokenService, m *metrics.Metrics, logger *zap.Logger) (AuthService, error) {
	decoy, err := hasher.Hash(context.Background(), decoyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare decoy digest: %w", err)
	}

	return &authService{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		metrics:     m,
		logger:      logger,
		decoyDigest: decoy,
	}, nil
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	passwordHash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		s.observe(metrics.OpRegister, err)
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         req.Role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// Duplicate emails land here too; the caller only learns that creation failed.
		s.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		err = apperror.Internal("Failed to create user")
		s.observe(metrics.OpRegister, err)
		return nil, err
	}

	resp, err := s.respond(user)
	if err != nil {
		s.observe(metrics.OpRegister, err)
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()), zap.Stringer("role", user.Role))
	s.observe(metrics.OpRegister, nil)
	return resp, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Spend the same bcrypt work as a real check so timing does not
			// reveal whether the account exists.
			s.verifyDecoy(ctx, req.Password)
			err = invalidCredentials()
		} else {
			s.logger.Error("Failed to get user by email", zap.Error(err))
			err = apperror.Internal("Database error")
		}
		s.observe(metrics.OpLogin, err)
		return nil, err
	}

	ok, err := s.hasher.Verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("Failed to verify password", zap.String("user_id", user.ID.String()), zap.Error(err))
		s.observe(metrics.OpLogin, err)
		return nil, err
	}
	if !ok {
		err = invalidCredentials()
		s.observe(metrics.OpLogin, err)
		return nil, err
	}

	resp, err := s.respond(user)
	if err != nil {
		s.observe(metrics.OpLogin, err)
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	s.observe(metrics.OpLogin, nil)
	return resp, nil
}

func (s *authService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID.String(), user.Role)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user.Response()}, nil
}

func (s *authService) verifyDecoy(ctx context.Context, password string) {
	_, _ = s.hasher.Verify(ctx, password, s.decoyDigest)
}

func (s *authService) observe(operation string, err error) {
	switch {
	case err == nil:
		s.metrics.ObserveAuth(operation, metrics.OutcomeSuccess)
	case apperror.KindOf(err) == apperror.KindInternal:
		s.metrics.ObserveAuth(operation, metrics.OutcomeError)
	default:
		s.metrics.ObserveAuth(operation, metrics.OutcomeFailure)
	}
}

func invalidCredentials() error {
	return apperror.Unauthorized("Invalid credentials")
}
