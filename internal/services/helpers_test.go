package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/database/testutil"
	"github.com/fatukunda/partytime/internal/models"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t)
}

func registerTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	svc, err := NewUserService(db)
	require.NoError(t, err)

	user, err := svc.Register(context.Background(), RegisterUserInput{
		FirstName:   "Luka",
		LastName:    "Mukasa",
		DateOfBirth: time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      models.GenderMale,
		Email:       email,
		Password:    "testPass1234!",
	})
	require.NoError(t, err)
	return user
}

func createTestParty(t *testing.T, db *gorm.DB, hostID string) *models.Party {
	t.Helper()

	svc, err := NewPartyService(db)
	require.NoError(t, err)

	party, err := svc.Create(context.Background(), hostID, CreatePartyInput{
		Title:       "Party on the lake",
		Description: "Bring your own boat",
		Address:     "Nyira beach",
		Category:    models.CategoryOther,
	})
	require.NoError(t, err)
	return party
}
