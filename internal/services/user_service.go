package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"blog-backend/internal/errs"
	"blog-backend/internal/models"
	"blog-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users  repositories.UserRepository
	tokens *TokenService
	now    func() time.Time
}

func NewUserService(users repositories.UserRepository, tokens *TokenService) *UserService {
	return &UserService{users: users, tokens: tokens, now: time.Now}
}

func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate(&req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Internal(err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errs.Conflict("user already exists")
		}
		return nil, errs.Internal(err)
	}

	logrus.WithField("user_id", user.ID).Info("user signed up")
	return s.issue(user.ID)
}

func (s *UserService) Signin(ctx context.Context, req models.SigninRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate(&req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeError(err, "user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.Unauthenticated("invalid credentials")
	}

	return s.issue(user.ID)
}

func (s *UserService) issue(userID string) (*models.AuthResponse, error) {
	token, err := s.tokens.Sign(userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &models.AuthResponse{JWT: token}, nil
}

func (s *UserService) GetSelf(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user not found")
	}
	profile := models.ProfileOf(user)
	return &profile, nil
}

// GetProfile returns targetID's account and whether requesterID is that user.
func (s *UserService) GetProfile(ctx context.Context, targetID, requesterID string) (*models.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, storeError(err, "user does not exist")
	}
	return &models.ProfileResponse{
		User:             *user,
		IsAuthorizedUser: requesterID != "" && requesterID == targetID,
		Message:          "Found user",
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.Profile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	profiles := make([]models.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, models.ProfileOf(&users[i]))
	}
	return profiles, nil
}

// UpdateProfile changes only the fields present in req.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := validate(&req); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, userID, req.Name, req.Bio, req.ImageURL)
	if err != nil {
		return nil, storeError(err, "user not found")
	}
	profile := models.ProfileOf(user)
	return &profile, nil
}
