package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	userRepo domain.UserRepository
	validate *validator.Validate
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(userRepo domain.UserRepository) domain.ProfileUsecase {
	v := validator.New()
	validation.RegisterValidators(v)
	return &profileUsecase{userRepo: userRepo, validate: v}
}

func (uc *profileUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// UpdateProfile validates and persists the mutable profile fields, then
// returns the fresh record. Email and role are immutable here.
func (uc *profileUsecase) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if err := uc.validate.Struct(update); err != nil {
		return nil, apperror.BadRequest(validation.FormatErrors(err))
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	user.Name = update.Name
	user.Phone = update.Phone
	user.Location = update.Location
	user.Bio = update.Bio
	user.Skills = update.Skills
	user.Experience = update.Experience
	user.Education = update.Education

	if err := uc.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}
