package service

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/entities"
	apperr "github.com/nac3nt/Appoint/internal/errors"
	"github.com/nac3nt/Appoint/internal/repository"
	"github.com/nac3nt/Appoint/internal/utils"
)

type AuthService interface {
	Register(email, password, name, role, phone string) (*entities.UserResponse, error)
	Login(email, password string) (*entities.LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(email, password, name, role, phone string) (*entities.UserResponse, error) {
	if email == "" || password == "" || name == "" {
		return nil, apperr.NewValidation("email, password and name are required")
	}
	if len(password) < 3 {
		return nil, apperr.NewValidation("password must be at least 3 characters")
	}
	if !utils.ValidRole(role) {
		return nil, apperr.NewValidation("invalid role, must be Patient, Doctor, or Admin")
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}
	if existing != nil {
		return nil, apperr.NewConflict("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &db.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
		Phone:        phone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperr.NewConflict("email already exists")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	resp := entities.FromUser(*user)
	return &resp, nil
}

func (s *authService) Login(email, password string) (*entities.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if user == nil {
		return nil, apperr.NewUnauthorized("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.NewUnauthorized("invalid email or password")
	}

	token, err := GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &entities.LoginResponse{Token: token, User: entities.FromUser(*user)}, nil
}

// GenerateToken issues the HS256 JWT the auth middleware expects.
func GenerateToken(user *db.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"name":    user.Name,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
