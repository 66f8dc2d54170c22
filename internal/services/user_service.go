package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/models"
	"github.com/fatukunda/partytime/pkg/crypto"
)

const minPasswordLength = 6

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user service: user not found")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not be able to tell which check failed.
	ErrInvalidCredentials = errors.New("user service: invalid login credentials")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("user service: email already registered")
	// ErrWeakPassword indicates the password violates the policy.
	ErrWeakPassword = errors.New("user service: password does not meet the policy")
	// ErrInvalidGender indicates an unsupported gender value.
	ErrInvalidGender = errors.New("user service: unsupported gender value")
	// ErrNoAvatar indicates no avatar bytes are stored for a user.
	ErrNoAvatar = errors.New("user service: no avatar stored")
)

// UserService manages registration, authentication and profile operations.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a user service once a database handle is supplied.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

// RegisterUserInput captures required fields when creating an account.
type RegisterUserInput struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
	PhoneNumber string
	Email       string
	Password    string
	Bio         string
}

// UpdateUserInput describes mutable profile fields. A nil pointer indicates no change.
type UpdateUserInput struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	Gender      *string
	PhoneNumber *string
	Email       *string
	Password    *string
	Bio         *string
}

// AcceptablePassword reports whether a password satisfies the account policy:
// minimum length, and the literal substring "password" is banned.
func AcceptablePassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	return !strings.Contains(strings.ToLower(password), "password")
}

func checkPasswordPolicy(password string) error {
	if !AcceptablePassword(password) {
		return ErrWeakPassword
	}
	return nil
}

// Register validates the input, hashes the password and persists the account.
// The plaintext password is never stored.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, errors.New("user service: email is required")
	}

	if !models.ValidGender(input.Gender) {
		return nil, ErrInvalidGender
	}

	if err := checkPasswordPolicy(input.Password); err != nil {
		return nil, err
	}

	if taken, err := s.emailTaken(ctx, email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := &models.User{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		DateOfBirth: datatypes.Date(input.DateOfBirth),
		Gender:      input.Gender,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Email:       email,
		Password:    hashed,
		Bio:         strings.TrimSpace(input.Bio),
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	return user, nil
}

// Authenticate looks a user up by case-insensitive email and verifies the
// password hash. Both failure modes return the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.WithContext(ctx).Take(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("user service: find user: %w", err)
	}

	if !crypto.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Get retrieves a user by identifier.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Take(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: find user: %w", err)
	}
	return &user, nil
}

// Update applies the provided profile changes. Field allow-listing has
// already happened at the boundary; this enforces the value-level rules.
func (s *UserService) Update(ctx context.Context, userID string, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = datatypes.Date(*input.DateOfBirth)
	}
	if input.Gender != nil {
		if !models.ValidGender(*input.Gender) {
			return nil, ErrInvalidGender
		}
		user.Gender = *input.Gender
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			if taken, err := s.emailTaken(ctx, email, user.ID); err != nil {
				return nil, err
			} else if taken {
				return nil, ErrEmailTaken
			}
		}
		user.Email = email
	}
	if input.Password != nil {
		if err := checkPasswordPolicy(*input.Password); err != nil {
			return nil, err
		}
		hashed, err := crypto.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("user service: hash password: %w", err)
		}
		user.Password = hashed
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("user service: save user: %w", err)
	}

	return user, nil
}

// Delete removes the account and everything it owns: session tokens, hosted
// parties (with their photos and requests) and outgoing requests. Cascade
// delete is the documented policy.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var partyIDs []string
		if err := tx.Model(&models.Party{}).
			Where("host_id = ?", user.ID).
			Pluck("id", &partyIDs).Error; err != nil {
			return err
		}

		if len(partyIDs) > 0 {
			if err := tx.Where("party_id IN ?", partyIDs).Delete(&models.PartyPhoto{}).Error; err != nil {
				return err
			}
			if err := tx.Where("party_id IN ?", partyIDs).Delete(&models.Request{}).Error; err != nil {
				return err
			}
			if err := tx.Where("host_id = ?", user.ID).Delete(&models.Party{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("requestor_id = ?", user.ID).Delete(&models.Request{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}

		return tx.Delete(user).Error
	})
}

// SetAvatar stores processed avatar bytes on the user row.
func (s *UserService) SetAvatar(ctx context.Context, userID string, data []byte, contentType string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"avatar":              data,
		"avatar_content_type": contentType,
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("user service: store avatar: %w", err)
	}
	return nil
}

// ClearAvatar removes any stored avatar bytes.
func (s *UserService) ClearAvatar(ctx context.Context, userID string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"avatar":              nil,
		"avatar_content_type": "",
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("user service: clear avatar: %w", err)
	}
	return nil
}

// GetAvatar returns stored avatar bytes for public fetching. ErrNoAvatar and
// ErrUserNotFound both surface as 404 at the boundary.
func (s *UserService) GetAvatar(ctx context.Context, userID string) ([]byte, string, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if !user.HasAvatar() {
		return nil, "", ErrNoAvatar
	}

	contentType := user.AvatarContentType
	if contentType == "" {
		contentType = "image/png"
	}

	return user.Avatar, contentType, nil
}

func (s *UserService) emailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("user service: check email: %w", err)
	}
	return count > 0, nil
}
