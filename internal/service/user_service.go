package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BootstrapAdminName is the fixed name of the first-run Administrator.
const BootstrapAdminName = "admin"

type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=Administrator Seller"`
	Password string     `json:"password" validate:"required"`
}

type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID *uuid.UUID) (*model.User, error)
	ChangePassword(userID uuid.UUID, newPassword string) error
	DeleteUser(userID uuid.UUID, deleterID *uuid.UUID) error
	ListUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
	BootstrapAdmin() (password string, created bool, err error)
}

type userService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	journalRepo repository.JournalRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository, journalRepo repository.JournalRepository) UserService {
	return &userService{db: db, userRepo: userRepo, journalRepo: journalRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, creatorID *uuid.UUID) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &apperr.ValidationError{Field: errs[0].FailedField, Reason: validator.Message(errs)}
	}
	if !req.Role.Valid() {
		return nil, &apperr.ValidationError{Field: "role", Reason: "unknown role"}
	}
	if existing, err := s.userRepo.FindByName(req.Name); err == nil && existing != nil {
		return nil, &apperr.ValidationError{Field: "name", Reason: "name already exists"}
	}

	user := &model.User{Name: req.Name, Role: req.Role}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperr.Storage("hash password", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreateTx(tx, user); err != nil {
			return apperr.Storage("create user", err)
		}
		details := fmt.Sprintf("User: %s - Role: %s", user.Name, user.Role)
		return s.journalRepo.Append(tx, model.ActionUserCreated, creatorID, details)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(userID uuid.UUID, newPassword string) error {
	user := &model.User{}
	if err := user.SetPassword(newPassword); err != nil {
		return apperr.Storage("hash password", err)
	}
	affected, err := s.userRepo.UpdatePassword(userID, user.Password)
	if err != nil {
		return apperr.Storage("update password", err)
	}
	if affected == 0 {
		return &apperr.NotFoundError{Entity: "user", ID: userID.String()}
	}
	return nil
}

func (s *userService) DeleteUser(userID uuid.UUID, deleterID *uuid.UUID) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "user", ID: userID.String()}
		}
		return apperr.Storage("load user", err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return apperr.Storage("delete user", err)
	}
	_ = s.journalRepo.Append(s.db, model.ActionUserDeleted, deleterID, fmt.Sprintf("User: %s", user.Name))
	return nil
}

func (s *userService) ListUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperr.Storage("list users", err)
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "user", ID: id.String()}
		}
		return nil, apperr.Storage("load user", err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

// BootstrapAdmin creates the first Administrator when none exists. The
// password is random and returned exactly once to the caller, which is
// expected to surface it to the operator; it is never persisted in clear.
// Calling this again is a no-op.
func (s *userService) BootstrapAdmin() (string, bool, error) {
	count, err := s.userRepo.CountByRole(model.RoleAdministrator)
	if err != nil {
		return "", false, apperr.Storage("count administrators", err)
	}
	if count > 0 {
		return "", false, nil
	}

	password, err := GeneratePassword()
	if err != nil {
		return "", false, err
	}

	admin := &model.User{Name: BootstrapAdminName, Role: model.RoleAdministrator}
	if err := admin.SetPassword(password); err != nil {
		return "", false, apperr.Storage("hash password", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreateTx(tx, admin); err != nil {
			return apperr.Storage("create admin", err)
		}
		return s.journalRepo.Append(tx, model.ActionBootstrap, &admin.ID, "Default administrator created")
	})
	if err != nil {
		return "", false, err
	}
	return password, true, nil
}

// GeneratePassword returns a random 16-hex-char secret.
func GeneratePassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", apperr.Storage("generate password", err)
	}
	return hex.EncodeToString(buf), nil
}
