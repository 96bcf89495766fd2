package usecase

import (
	"context"
	"errors"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades hash time against brute-force resistance
const bcryptCost = 12

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenIssuer
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenIssuer) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

// Register creates an account and signs the first session token. Any role
// other than ADMIN collapses to USER so the public endpoint cannot mint
// privileged accounts by accident.
func (uc *authUsecase) Register(ctx context.Context, name, email, password, role string) (*domain.AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, apperror.BadRequest("Name, email and password are required")
	}
	if len(password) < 6 {
		return nil, apperror.BadRequest("Password must be at least 6 characters")
	}
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Email:    email,
		Name:     name,
		Password: string(hash),
		Role:     role,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal(err)
	}

	token, err := uc.tokens.Issue(auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and signs a session token. Unknown email and
// wrong password return the same message so accounts cannot be enumerated.
func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.BadRequest("Email and password are required")
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid email or password")
		}
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	token, err := uc.tokens.Issue(auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.AuthResult{Token: token, User: user}, nil
}

// GetCurrentUser loads the authenticated user's record
func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
