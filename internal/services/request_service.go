package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/models"
)

var (
	// ErrRequestNotFound is returned when a request does not exist inside the
	// caller's scope, whether as requestor or as host.
	ErrRequestNotFound = errors.New("request service: request not found")
	// ErrRequestPartyMissing indicates the target party does not exist at creation.
	ErrRequestPartyMissing = errors.New("request service: party does not exist")
	// ErrRequestAlreadyResolved rejects a second resolution of a terminal request.
	ErrRequestAlreadyResolved = errors.New("request service: request already resolved")
	// ErrInvalidStatus indicates a resolution status outside accepted/rejected.
	ErrInvalidStatus = errors.New("request service: unsupported status value")
)

// RequestService governs creation and status transitions of attendance requests.
type RequestService struct {
	db *gorm.DB
}

// NewRequestService constructs a request service once a database handle is supplied.
func NewRequestService(db *gorm.DB) (*RequestService, error) {
	if db == nil {
		return nil, errors.New("request service: db is required")
	}
	return &RequestService{db: db}, nil
}

// ResolveRequestInput describes the fields a host may change on a request.
type ResolveRequestInput struct {
	Status  string
	Message *string
}

// Create files a request against a party. Referential integrity is enforced
// here, not by a database constraint, and the status is always pending no
// matter what the caller sent.
func (s *RequestService) Create(ctx context.Context, partyID, requestorID, message string) (*models.Request, error) {
	if strings.TrimSpace(requestorID) == "" {
		return nil, errors.New("request service: requestor id is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Party{}).
		Where("id = ?", partyID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("request service: check party: %w", err)
	}
	if count == 0 {
		return nil, ErrRequestPartyMissing
	}

	request := &models.Request{
		RequestorID: requestorID,
		PartyID:     partyID,
		Message:     strings.TrimSpace(message),
		Status:      models.StatusPending,
	}

	if err := s.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, fmt.Errorf("request service: create request: %w", err)
	}

	return request, nil
}

// ListForRequestor retrieves every request filed by the user.
func (s *RequestService) ListForRequestor(ctx context.Context, requestorID string) ([]models.Request, error) {
	var requests []models.Request
	err := s.db.WithContext(ctx).
		Where("requestor_id = ?", requestorID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("request service: list requests: %w", err)
	}
	return requests, nil
}

// GetForRequestor retrieves one request only when the caller filed it.
func (s *RequestService) GetForRequestor(ctx context.Context, requestID, requestorID string) (*models.Request, error) {
	var request models.Request
	err := s.db.WithContext(ctx).
		Where("id = ? AND requestor_id = ?", requestID, requestorID).
		Take(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("request service: find request: %w", err)
	}
	return &request, nil
}

// ListReceived retrieves the requests targeting one of the caller's parties.
// The party is scoped to the host first, so a foreign party yields NotFound.
func (s *RequestService) ListReceived(ctx context.Context, partyID, hostID string) ([]models.Request, error) {
	if err := s.requirePartyHostedBy(ctx, partyID, hostID); err != nil {
		return nil, err
	}

	var requests []models.Request
	err := s.db.WithContext(ctx).
		Where("party_id = ?", partyID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("request service: list received: %w", err)
	}
	return requests, nil
}

// GetReceived retrieves one request on a hosted party: the party-host pair is
// confirmed first, then the request is matched against that party.
func (s *RequestService) GetReceived(ctx context.Context, requestID, partyID, hostID string) (*models.Request, error) {
	if err := s.requirePartyHostedBy(ctx, partyID, hostID); err != nil {
		return nil, err
	}

	var request models.Request
	err := s.db.WithContext(ctx).
		Where("id = ? AND party_id = ?", requestID, partyID).
		Take(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("request service: find request: %w", err)
	}
	return &request, nil
}

// Resolve moves a pending request into a terminal state. Only the host-scoped
// lookup reaches this point; field allow-listing happened at the boundary.
// Re-resolving a terminal request is a conflict, not an idempotent no-op.
func (s *RequestService) Resolve(ctx context.Context, requestID, partyID, hostID string, input ResolveRequestInput) (*models.Request, error) {
	if !models.ValidResolution(input.Status) {
		return nil, ErrInvalidStatus
	}

	request, err := s.GetReceived(ctx, requestID, partyID, hostID)
	if err != nil {
		return nil, err
	}

	if request.Status != models.StatusPending {
		return nil, ErrRequestAlreadyResolved
	}

	request.Status = input.Status
	if input.Message != nil {
		request.Message = strings.TrimSpace(*input.Message)
	}

	if err := s.db.WithContext(ctx).Save(request).Error; err != nil {
		return nil, fmt.Errorf("request service: save request: %w", err)
	}

	return request, nil
}

func (s *RequestService) requirePartyHostedBy(ctx context.Context, partyID, hostID string) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Party{}).
		Where("id = ? AND host_id = ?", partyID, hostID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("request service: check party: %w", err)
	}
	if count == 0 {
		return ErrPartyNotFound
	}
	return nil
}
