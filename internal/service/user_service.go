package service

import (
	"context"
	"strings"

	"twosides/internal/models"
	"twosides/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	PreferredName string
	Email         string
	Password      string
	Bio           string
}

type UpdateProfileInput struct {
	UID           string
	PreferredName string
	Bio           string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const minPasswordLen = 8

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, models.NewValidationError("A valid email is required")
	}
	if in.PreferredName == "" {
		return nil, models.NewValidationError("Preferred name is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		UID:           uuid.NewString(),
		PreferredName: in.PreferredName,
		Email:         email,
		Password:      string(hash),
		Bio:           in.Bio,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials. Wrong email and wrong password report
// the same error so login probing reveals nothing.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	return s.userRepo.GetByUID(ctx, uid)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByUID(ctx, in.UID)
	if err != nil {
		return nil, err
	}
	if in.PreferredName != "" {
		user.PreferredName = in.PreferredName
	}
	user.Bio = in.Bio
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListOthers returns every other user, for the people-discovery page.
func (s *UserService) ListOthers(ctx context.Context, viewerUID string) ([]models.User, error) {
	return s.userRepo.ListOthers(ctx, viewerUID)
}
