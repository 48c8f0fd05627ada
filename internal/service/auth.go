package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Navneet-kaur7/todo-app/internal/model"
	"github.com/Navneet-kaur7/todo-app/internal/repository"
)

// UserStore is the credential store the auth service persists users in.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdatePasswordHash(ctx context.Context, user *model.User) error
}

// TokenIssuer signs bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (match, needsRehash bool, err error)
}

// AuthService handles authentication business logic.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	hasher PasswordHasher
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenIssuer, hasher PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account and returns an auth token.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)

	if err := validateStruct(req); err != nil {
		return model.AuthResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	now := s.now()
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")

	return s.authResponse(user)
}

// Login authenticates a user and returns an auth token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	req.Email = NormalizeEmail(req.Email)

	if err := validateStruct(req); err != nil {
		return model.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, needsRehash, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	if needsRehash {
		s.rehash(ctx, user, req.Password)
	}

	return s.authResponse(user)
}

// GetUser retrieves a user by ID and returns safe user data.
func (s *AuthService) GetUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return user.ToResponse(), nil
}

// UpdateProfile changes the name and/or email of the given user.
func (s *AuthService) UpdateProfile(ctx context.Context, user *model.User, req model.UpdateProfileRequest) (model.UserResponse, error) {
	if req.Name == nil && req.Email == nil {
		return model.UserResponse{}, invalid("", "nothing to update")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
		if name == "" {
			return model.UserResponse{}, invalid("name", "is required")
		}
	}
	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		req.Email = &email
		if email == "" {
			return model.UserResponse{}, invalid("email", "is required")
		}
	}

	if err := validateStruct(req); err != nil {
		return model.UserResponse{}, err
	}

	updated := *user
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	updated.UpdatedAt = s.now()

	if err := s.users.UpdateProfile(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.UserResponse{}, ErrEmailTaken
		case errors.Is(err, repository.ErrUserNotFound):
			return model.UserResponse{}, ErrUserNotFound
		default:
			return model.UserResponse{}, err
		}
	}

	return updated.ToResponse(), nil
}

// rehash upgrades a legacy password hash to argon2id. Failures are logged, not returned.
func (s *AuthService) rehash(ctx context.Context, user *model.User, password string) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("password rehash failed")
		return
	}

	upgraded := *user
	upgraded.PasswordHash = hash
	upgraded.UpdatedAt = s.now()

	if err := s.users.UpdatePasswordHash(ctx, &upgraded); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("storing rehashed password failed")
		return
	}

	log.Info().Str("user_id", user.ID).Msg("legacy password hash upgraded")
}

func (s *AuthService) authResponse(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
