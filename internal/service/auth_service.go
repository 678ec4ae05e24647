package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory_api/internal/model"
	"inventory_api/internal/repository"
	"inventory_api/internal/utils"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, deliberately indistinguishable so callers cannot probe
	// which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService provides registration, login, and admin user creation
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.PublicUser, error)
	AdminCreateUser(ctx context.Context, req model.AdminCreateUserRequest) (*model.PublicUser, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.PublicUser, string, error)
}

type authService struct {
	userRepo     repository.UserRepository
	jwtUtil      *utils.JWTUtil
	registerRole string
}

// NewAuthService creates a new AuthService. registerRole is the role given
// to every self-registered user.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, registerRole string) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtUtil:      jwtUtil,
		registerRole: registerRole,
	}
}

// Register creates a new user account with the configured default role and
// returns its public projection.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.PublicUser, error) {
	return s.createUser(ctx, req.Name, req.Email, req.Password, s.registerRole)
}

// AdminCreateUser creates a user with a caller-supplied role. The admin
// check happens upstream in the route middleware.
func (s *authService) AdminCreateUser(ctx context.Context, req model.AdminCreateUserRequest) (*model.PublicUser, error) {
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	return s.createUser(ctx, req.Name, req.Email, req.Password, role)
}

func (s *authService) createUser(ctx context.Context, name, email, password, role string) (*model.PublicUser, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	public := user.Public()
	return &public, nil
}

// Login authenticates a user and returns the public projection plus a
// signed token.
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.PublicUser, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	public := user.Public()
	return &public, token, nil
}
