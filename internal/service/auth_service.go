package service

import (
	"errors"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/pkg/jwt"
)

// ErrInvalidCredentials is deliberately the only authentication failure the
// caller ever sees: unknown name and wrong password are indistinguishable.
var ErrInvalidCredentials = errors.New("invalid name or password")

type AuthService interface {
	Authenticate(name, password string) (*model.User, error)
	Login(name, password string) (*LoginResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Authenticate(name, password string) (*model.User, error) {
	user, err := s.userRepo.FindByName(name)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) Login(name, password string) (*LoginResponse, error) {
	user, err := s.Authenticate(name, password)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
