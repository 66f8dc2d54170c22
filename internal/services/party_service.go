package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/models"
)

var (
	// ErrPartyNotFound is returned when a party does not exist or is not
	// hosted by the caller. The two cases are indistinguishable on purpose.
	ErrPartyNotFound = errors.New("party service: party not found")
	// ErrPhotoNotFound indicates the photo does not exist on the scoped party.
	ErrPhotoNotFound = errors.New("party service: photo not found")
	// ErrInvalidCategory indicates an unsupported party category.
	ErrInvalidCategory = errors.New("party service: unsupported category")
)

// PartyService manages host-scoped party CRUD and photo storage.
type PartyService struct {
	db *gorm.DB
}

// NewPartyService constructs a party service once a database handle is supplied.
func NewPartyService(db *gorm.DB) (*PartyService, error) {
	if db == nil {
		return nil, errors.New("party service: db is required")
	}
	return &PartyService{db: db}, nil
}

// CreatePartyInput captures required fields when creating a party.
type CreatePartyInput struct {
	Title       string
	Description string
	Address     string
	Category    string
}

// UpdatePartyInput describes mutable party fields. A nil pointer indicates no change.
type UpdatePartyInput struct {
	Title       *string
	Description *string
	Address     *string
	Category    *string
}

// PhotoUpload carries one already-processed image ready for storage.
type PhotoUpload struct {
	Data        []byte
	ContentType string
}

// Create persists a new party with the caller as host.
func (s *PartyService) Create(ctx context.Context, hostID string, input CreatePartyInput) (*models.Party, error) {
	if strings.TrimSpace(hostID) == "" {
		return nil, errors.New("party service: host id is required")
	}

	if !models.ValidCategory(input.Category) {
		return nil, ErrInvalidCategory
	}

	party := &models.Party{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Address:     strings.TrimSpace(input.Address),
		Category:    input.Category,
		HostID:      hostID,
	}

	if err := s.db.WithContext(ctx).Create(party).Error; err != nil {
		return nil, fmt.Errorf("party service: create party: %w", err)
	}

	return party, nil
}

// ListHosted retrieves every party hosted by the user.
func (s *PartyService) ListHosted(ctx context.Context, hostID string) ([]models.Party, error) {
	var parties []models.Party
	err := s.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&parties).Error
	if err != nil {
		return nil, fmt.Errorf("party service: list parties: %w", err)
	}
	return parties, nil
}

// GetOwned retrieves a party only when the caller hosts it. Ownership is part
// of the lookup predicate, never a separate comparison after fetching.
func (s *PartyService) GetOwned(ctx context.Context, partyID, hostID string) (*models.Party, error) {
	var party models.Party
	err := s.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "party_id", "content_type", "created_at")
		}).
		Where("id = ? AND host_id = ?", partyID, hostID).
		Take(&party).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPartyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("party service: find party: %w", err)
	}
	return &party, nil
}

// Update applies the provided changes to a hosted party.
func (s *PartyService) Update(ctx context.Context, partyID, hostID string, input UpdatePartyInput) (*models.Party, error) {
	party, err := s.GetOwned(ctx, partyID, hostID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		party.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		party.Description = strings.TrimSpace(*input.Description)
	}
	if input.Address != nil {
		party.Address = strings.TrimSpace(*input.Address)
	}
	if input.Category != nil {
		if !models.ValidCategory(*input.Category) {
			return nil, ErrInvalidCategory
		}
		party.Category = *input.Category
	}

	if err := s.db.WithContext(ctx).Omit("Photos").Save(party).Error; err != nil {
		return nil, fmt.Errorf("party service: save party: %w", err)
	}

	return party, nil
}

// Delete removes a hosted party together with its photos and requests.
func (s *PartyService) Delete(ctx context.Context, partyID, hostID string) error {
	party, err := s.GetOwned(ctx, partyID, hostID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("party_id = ?", party.ID).Delete(&models.PartyPhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("party_id = ?", party.ID).Delete(&models.Request{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Party{}, "id = ?", party.ID).Error
	})
}

// AddPhotos stores a batch of processed photos on a hosted party. The batch
// is awaited: a success response means every photo row was written. Store
// failures are aggregated and surfaced; rows written before a failure stay.
func (s *PartyService) AddPhotos(ctx context.Context, partyID, hostID string, uploads []PhotoUpload) ([]models.PartyPhoto, error) {
	party, err := s.GetOwned(ctx, partyID, hostID)
	if err != nil {
		return nil, err
	}

	var stored []models.PartyPhoto
	var errs error
	for _, upload := range uploads {
		photo := models.PartyPhoto{
			PartyID:     party.ID,
			Data:        upload.Data,
			ContentType: upload.ContentType,
		}
		if err := s.db.WithContext(ctx).Create(&photo).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("party service: store photo: %w", err))
			continue
		}
		stored = append(stored, photo)
	}

	if errs != nil {
		return stored, errs
	}
	return stored, nil
}

// GetPhoto loads one stored photo with its bytes. The fetch is public, so it
// is scoped to the party rather than the host.
func (s *PartyService) GetPhoto(ctx context.Context, partyID, photoID string) (*models.PartyPhoto, error) {
	var photo models.PartyPhoto
	err := s.db.WithContext(ctx).
		Where("id = ? AND party_id = ?", photoID, partyID).
		Take(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("party service: find photo: %w", err)
	}
	return &photo, nil
}

// DeletePhoto removes one photo from a hosted party.
func (s *PartyService) DeletePhoto(ctx context.Context, partyID, hostID, photoID string) error {
	party, err := s.GetOwned(ctx, partyID, hostID)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND party_id = ?", photoID, party.ID).
		Delete(&models.PartyPhoto{})
	if result.Error != nil {
		return fmt.Errorf("party service: delete photo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}
