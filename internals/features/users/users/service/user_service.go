package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/constants"
	"afrikstudent_backend/internals/features/users/users/dto"
	"afrikstudent_backend/internals/features/users/users/model"
	helper "afrikstudent_backend/internals/helpers"
)

// DefaultPassword is assigned when an admin creates an account without one.
// The user is expected to change it on first login.
const DefaultPassword = "ChangeMe123!"

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (dto.UserDTO, error) {
	var created model.UserModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		email := strings.ToLower(strings.TrimSpace(req.UserEmail))

		var count int64
		if err := tx.Model(&model.UserModel{}).
			Where("user_email = ?", email).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check email")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}

		password := req.UserPassword
		if password == "" {
			password = DefaultPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}

		role := req.UserRole
		if role == "" {
			role = constants.RoleStudent
		}
		if err := validatePermissions(req.UserPermissions); err != nil {
			return err
		}

		created = model.UserModel{
			UserName:        strings.TrimSpace(req.UserName),
			UserEmail:       email,
			UserPassword:    string(hash),
			UserRole:        role,
			UserPermissions: req.UserPermissions,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
		}
		return nil
	})
	if err != nil {
		return dto.UserDTO{}, err
	}
	return dto.ToUserDTO(created), nil
}

func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (dto.UserDTO, error) {
	var updated model.UserModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.UserModel
		if err := tx.First(&user, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
		}

		updates := map[string]interface{}{}
		if req.UserName != nil {
			updates["user_name"] = strings.TrimSpace(*req.UserName)
		}
		if req.UserEmail != nil {
			email := strings.ToLower(strings.TrimSpace(*req.UserEmail))
			var count int64
			if err := tx.Model(&model.UserModel{}).
				Where("user_email = ?", email).
				Where("user_id <> ?", userID).
				Count(&count).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check email")
			}
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "Email is already registered")
			}
			updates["user_email"] = email
		}
		if req.UserPassword != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.UserPassword), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
			}
			updates["user_password"] = string(hash)
		}
		if req.UserRole != nil {
			updates["user_role"] = *req.UserRole
		}
		if req.UserPermissions != nil {
			if err := validatePermissions(req.UserPermissions); err != nil {
				return err
			}
			updates["user_permissions"] = pq.StringArray(req.UserPermissions)
		}
		if len(updates) > 0 {
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to update user")
			}
		}

		return tx.First(&updated, "user_id = ?", userID).Error
	})
	if err != nil {
		return dto.UserDTO{}, err
	}
	return dto.ToUserDTO(updated), nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&model.UserModel{}, "user_id = ?", userID)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete user")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (dto.UserDTO, error) {
	var user model.UserModel
	if err := s.DB.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserDTO{}, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return dto.UserDTO{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	return dto.ToUserDTO(user), nil
}

func (s *UserService) GetAllUsers(ctx context.Context, role *string, p helper.PaginationParams) ([]dto.UserDTO, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.UserModel{})
	if role != nil {
		db = db.Where("user_role = ?", *role)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []model.UserModel
	if err := db.Order("user_name ASC").
		Offset(p.Offset()).Limit(p.PerPage).
		Find(&users).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list users")
	}

	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserDTO(u))
	}
	return out, total, nil
}

func validatePermissions(perms []string) error {
	known := make(map[string]struct{}, len(constants.Permissions))
	for _, p := range constants.Permissions {
		known[p] = struct{}{}
	}
	for _, p := range perms {
		if _, ok := known[p]; !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown permission: "+p)
		}
	}
	return nil
}
