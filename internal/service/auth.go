package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/drivetrade/vehicle-store-api/internal/dto"
	"github.com/drivetrade/vehicle-store-api/internal/model"
	"github.com/drivetrade/vehicle-store-api/internal/repository"
	"github.com/drivetrade/vehicle-store-api/internal/token"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email: req.Email, Password: string(hashed),
		FirstName: req.FirstName, LastName: req.LastName, Role: model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &dto.AuthResponse{Token: tok, User: toUserResponse(user)}, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &dto.AuthResponse{Token: tok, User: toUserResponse(user)}, nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID: user.ID, Email: user.Email,
		FirstName: user.FirstName, LastName: user.LastName, Role: user.Role,
	}
}
