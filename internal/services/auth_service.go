package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/paluwagan/paluwagan-backend/internal/config"
	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"github.com/paluwagan/paluwagan-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles member registration and login
type AuthServiceImpl struct {
	memberRepo repositories.MemberRepository
	cfg        *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(memberRepo repositories.MemberRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		memberRepo: memberRepo,
		cfg:        cfg,
	}
}

// Register creates a member account with a bcrypt-hashed password
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.Member, error) {
	_, err := s.memberRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperrors.New(apperrors.CodeConflict, "a member with this email already exists")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		slog.Error("Failed to check for existing member", "error", err, "email", req.Email)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to check for existing member", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, "failed to hash password", err)
	}

	member := &models.Member{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      "member",
	}

	err = s.memberRepo.Create(ctx, member)
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, apperrors.New(apperrors.CodeConflict, "a member with this email already exists")
	}
	if err != nil {
		slog.Error("Failed to create member", "error", err, "email", req.Email)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to create member", err)
	}

	slog.Info("Member registered", "memberId", member.ID.Hex(), "email", member.Email)
	member.Password = ""
	return member, nil
}

// Login verifies credentials and issues a JWT
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	member, err := s.memberRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid credentials")
	}
	if err != nil {
		slog.Error("Failed to look up member for login", "error", err, "email", req.Email)
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to look up member", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid credentials")
	}

	token, err := jwt.Generate(member.ID.Hex(), member.Email, member.Role,
		s.cfg.JWT.Secret, time.Duration(s.cfg.JWT.ExpiresIn)*time.Second)
	if err != nil {
		slog.Error("Failed to generate token", "error", err, "memberId", member.ID.Hex())
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to generate token", err)
	}

	member.Password = ""
	return &models.LoginResponse{Token: token, Member: member}, nil
}
