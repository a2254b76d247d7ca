package dto

import (
	"time"

	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/users/users/model"
)

type UserDTO struct {
	UserID          uuid.UUID `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserEmail       string    `json:"user_email"`
	UserRole        string    `json:"user_role"`
	UserPermissions []string  `json:"user_permissions"`
	UserCreatedAt   time.Time `json:"user_created_at"`
	UserUpdatedAt   time.Time `json:"user_updated_at"`
}

type CreateUserRequest struct {
	UserName  string `json:"user_name" validate:"required,max=255"`
	UserEmail string `json:"user_email" validate:"required,email,max=255"`

	// Optional; a generated default is used when empty.
	UserPassword string `json:"user_password" validate:"omitempty,min=8"`

	UserRole        string   `json:"user_role" validate:"omitempty,oneof=admin instructor student"`
	UserPermissions []string `json:"user_permissions" validate:"omitempty,dive,required"`
}

type UpdateUserRequest struct {
	UserName     *string `json:"user_name" validate:"omitempty,max=255"`
	UserEmail    *string `json:"user_email" validate:"omitempty,email,max=255"`
	UserPassword *string `json:"user_password" validate:"omitempty,min=8"`

	UserRole        *string  `json:"user_role" validate:"omitempty,oneof=admin instructor student"`
	UserPermissions []string `json:"user_permissions" validate:"omitempty,dive,required"`
}

func ToUserDTO(m model.UserModel) UserDTO {
	perms := []string(m.UserPermissions)
	if perms == nil {
		perms = []string{}
	}
	return UserDTO{
		UserID:          m.UserID,
		UserName:        m.UserName,
		UserEmail:       m.UserEmail,
		UserRole:        m.UserRole,
		UserPermissions: perms,
		UserCreatedAt:   m.UserCreatedAt,
		UserUpdatedAt:   m.UserUpdatedAt,
	}
}
