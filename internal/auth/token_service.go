package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/models"
	"github.com/fatukunda/partytime/pkg/metrics"
)

var (
	// ErrTokenNotRecognised covers every resolution failure: malformed tokens,
	// tokens signed by someone else, and tokens revoked server-side. Callers
	// must not be able to tell these apart.
	ErrTokenNotRecognised = errors.New("token service: token not recognised")
)

// TokenConfig describes tunable behaviour for the TokenService.
type TokenConfig struct {
	Clock func() time.Time
}

// TokenService manages each user's set of session tokens. A token is live
// while its signed JWT verifies and its row still exists; deleting the row is
// how logout revokes a token independent of signature validity.
type TokenService struct {
	db  *gorm.DB
	jwt *JWTService
	now func() time.Time
}

// NewTokenService constructs a token manager backed by the provided database and JWT service.
func NewTokenService(db *gorm.DB, jwtService *JWTService, cfg TokenConfig) (*TokenService, error) {
	if db == nil {
		return nil, errors.New("token service: db is required")
	}
	if jwtService == nil {
		return nil, errors.New("token service: jwt service is required")
	}

	clock := time.Now
	if cfg.Clock != nil {
		clock = cfg.Clock
	}

	return &TokenService{db: db, jwt: jwtService, now: clock}, nil
}

// Issue signs a new token for the user, appends it to the user's token set
// and returns the signed string. Multiple live tokens per user are expected.
func (s *TokenService) Issue(ctx context.Context, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("token service: user id is required")
	}

	signed, err := s.jwt.Sign(userID)
	if err != nil {
		return "", fmt.Errorf("token service: sign: %w", err)
	}

	record := &models.AuthToken{
		UserID: userID,
		Token:  signed,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return "", fmt.Errorf("token service: persist token: %w", err)
	}

	metrics.ActiveTokens.Inc()

	return signed, nil
}

// Resolve verifies the signature, then requires the token to still be present
// in the bound user's token set, and finally loads that user. All failures
// collapse into ErrTokenNotRecognised.
func (s *TokenService) Resolve(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenNotRecognised
	}

	claims, err := s.jwt.Verify(token)
	if err != nil {
		return nil, ErrTokenNotRecognised
	}

	var record models.AuthToken
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", claims.UserID, token).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotRecognised
	}
	if err != nil {
		return nil, fmt.Errorf("token service: find token: %w", err)
	}

	var user models.User
	err = s.db.WithContext(ctx).Take(&user, "id = ?", claims.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotRecognised
	}
	if err != nil {
		return nil, fmt.Errorf("token service: load user: %w", err)
	}

	return &user, nil
}

// Revoke removes exactly the presented token from the user's set.
func (s *TokenService) Revoke(ctx context.Context, userID, token string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(token) == "" {
		return errors.New("token service: user id and token are required")
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.AuthToken{})
	if result.Error != nil {
		return fmt.Errorf("token service: revoke token: %w", result.Error)
	}

	metrics.ActiveTokens.Sub(float64(result.RowsAffected))

	return nil
}

// RevokeAll empties the user's token set, logging out every device.
func (s *TokenService) RevokeAll(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, errors.New("token service: user id is required")
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.AuthToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("token service: revoke all: %w", result.Error)
	}

	metrics.ActiveTokens.Sub(float64(result.RowsAffected))

	return result.RowsAffected, nil
}

// CleanupExpired purges token rows older than the JWT lifetime. Their JWTs
// no longer verify, so the rows only take up space.
func (s *TokenService) CleanupExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.jwt.TTL())

	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.AuthToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("token service: cleanup expired: %w", result.Error)
	}

	return result.RowsAffected, nil
}
