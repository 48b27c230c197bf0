package service

import (
	"context"
	"errors"
	"strings"

	"shopd/internal/auth"
	"shopd/internal/domain"
	"shopd/internal/repository"

	"go.uber.org/zap"
)

// AuthService covers registration, login and the profile of the
// authenticated user.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error)
	Login(ctx context.Context, req LoginRequest) (*domain.User, string, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}

type authService struct {
	users     repository.UsersRepository
	companies repository.CompaniesRepository
	tokens    *auth.TokenService
	logger    *zap.Logger
}

func NewAuthService(users repository.UsersRepository, companies repository.CompaniesRepository, tokens *auth.TokenService, logger *zap.Logger) AuthService {
	return &authService{users: users, companies: companies, tokens: tokens, logger: logger}
}

type RegisterRequest struct {
	Name      string
	Email     string
	Password  string
	CompanyID int64
	Role      string
}

type LoginRequest struct {
	Email    string
	Password string
	// Client metadata, for the audit log only.
	IPAddress string
	UserAgent string
}

type UpdateProfileRequest struct {
	Name  *string
	Email *string
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	if _, err := s.companies.Get(ctx, req.CompanyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.NewValidationError("company does not exist")
		}
		return nil, "", err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleStoreAdmin
	}

	user := &domain.User{
		CompanyID:    req.CompanyID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, user.CompanyID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.Int64("company_id", user.CompanyID),
	)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("login failed: unknown email",
				zap.String("ip_address", req.IPAddress),
				zap.String("user_agent", req.UserAgent),
			)
			return nil, "", auth.ErrPasswordMismatch
		}
		return nil, "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("login failed: wrong password",
			zap.Int64("user_id", user.ID),
			zap.String("ip_address", req.IPAddress),
			zap.String("user_agent", req.UserAgent),
		)
		return nil, "", auth.ErrPasswordMismatch
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, user.CompanyID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
		if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != userID {
			return nil, domain.ErrEmailTaken
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	upd := repository.UserUpdate{Name: req.Name, Email: req.Email}
	if err := s.users.Update(ctx, userID, upd); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *authService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return err
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, userID, repository.UserUpdate{PasswordHash: &hash})
}
