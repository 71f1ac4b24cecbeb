package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/peacockstore/peacock-api/internal/model"
	"github.com/peacockstore/peacock-api/internal/repository"
)

var (
	ErrUserAlreadyExists  = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	userRepo  repository.UserRepository
	gate      *OfflineGate
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, gate *OfflineGate, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, gate: gate, jwtSecret: []byte(jwtSecret), jwtExpiry: jwtExpiry}
}

// Signup creates an account in the given user-type partition. The same
// email may sign up once as customer and once as seller.
func (s *AuthService) Signup(ctx context.Context, name, email, password string, userType model.UserType) error {
	if err := s.gate.Check(); err != nil {
		return err
	}
	existing, err := s.userRepo.GetByEmailAndType(ctx, email, userType)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if existing != nil {
		return ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Name: name, Email: email, Password: string(hashed), UserType: userType}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, userType model.UserType) (string, *model.User, error) {
	if err := s.gate.Check(); err != nil {
		return "", nil, err
	}
	user, err := s.userRepo.GetByEmailAndType(ctx, email, userType)
	if err != nil {
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// UpdateProfile changes name, phone and optionally the password of the
// caller's own account.
func (s *AuthService) UpdateProfile(ctx context.Context, email string, userType model.UserType, name, phoneNumber, newPassword string) (*model.User, error) {
	if err := s.gate.Check(); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmailAndType(ctx, email, userType)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if name != "" {
		user.Name = name
	}
	user.PhoneNumber = phoneNumber
	if newPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *AuthService) generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.Email,
		"typ": string(user.UserType),
		"exp": time.Now().Add(s.jwtExpiry).Unix(),
		"iat": time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
