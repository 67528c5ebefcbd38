package usecase

import (
	"context"

	"parlaseramik/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput carries the mutable profile fields. Email is immutable.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// UserUsecase defines self-service account operations.
type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	// ChangePassword also ends every session of the user.
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
}
