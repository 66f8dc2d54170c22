package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatukunda/partytime/internal/models"
)

func TestRegisterHashesPasswordAndLowercasesEmail(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterUserInput{
		FirstName: "Luka",
		LastName:  "Mukasa",
		Gender:    models.GenderMale,
		Email:     "LukaM@App.Com",
		Password:  "testPass1234!",
	})
	require.NoError(t, err)

	require.Equal(t, "lukam@app.com", user.Email)
	require.NotEqual(t, "testPass1234!", user.Password)
	require.NotEmpty(t, user.ID)

	var stored models.User
	require.NoError(t, db.Take(&stored, "id = ?", user.ID).Error)
	require.NotEqual(t, "testPass1234!", stored.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	ctx := context.Background()

	registerTestUser(t, db, "dup@app.com")

	_, err = svc.Register(ctx, RegisterUserInput{
		FirstName: "Second",
		LastName:  "User",
		Gender:    models.GenderFemale,
		Email:     "DUP@app.com",
		Password:  "testPass1234!",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterEnforcesPasswordPolicy(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = svc.Register(ctx, RegisterUserInput{
		FirstName: "Shorty",
		LastName:  "User",
		Gender:    models.GenderFemale,
		Email:     "short@app.com",
		Password:  "abc",
	})
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(ctx, RegisterUserInput{
		FirstName: "Literal",
		LastName:  "User",
		Gender:    models.GenderFemale,
		Email:     "literal@app.com",
		Password:  "myPassword123",
	})
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterRejectsUnknownGender(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterUserInput{
		FirstName: "Gendered",
		LastName:  "User",
		Gender:    "unknown",
		Email:     "gender@app.com",
		Password:  "testPass1234!",
	})
	require.ErrorIs(t, err, ErrInvalidGender)
}

func TestAuthenticateNeverRevealsWhichCheckFailed(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	ctx := context.Background()
	registerTestUser(t, db, "auth@app.com")

	user, err := svc.Authenticate(ctx, "AUTH@app.com", "testPass1234!")
	require.NoError(t, err)
	require.Equal(t, "auth@app.com", user.Email)

	_, badEmail := svc.Authenticate(ctx, "nobody@app.com", "testPass1234!")
	_, badPassword := svc.Authenticate(ctx, "auth@app.com", "wrong-password1")
	require.ErrorIs(t, badEmail, ErrInvalidCredentials)
	require.ErrorIs(t, badPassword, ErrInvalidCredentials)
	require.Equal(t, badEmail, badPassword)
}

func TestUpdateProfileFields(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	ctx := context.Background()
	user := registerTestUser(t, db, "update@app.com")

	bio := "Host of lake parties"
	gender := models.GenderUnspecified
	updated, err := svc.Update(ctx, user.ID, UpdateUserInput{
		Bio:    &bio,
		Gender: &gender,
	})
	require.NoError(t, err)
	require.Equal(t, bio, updated.Bio)
	require.Equal(t, gender, updated.Gender)

	bad := "unknown"
	_, err = svc.Update(ctx, user.ID, UpdateUserInput{Gender: &bad})
	require.ErrorIs(t, err, ErrInvalidGender)

	weak := "short"
	_, err = svc.Update(ctx, user.ID, UpdateUserInput{Password: &weak})
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestUpdateRejectsTakenEmail(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	ctx := context.Background()
	registerTestUser(t, db, "taken@app.com")
	user := registerTestUser(t, db, "mover@app.com")

	taken := "taken@app.com"
	_, err = svc.Update(ctx, user.ID, UpdateUserInput{Email: &taken})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteCascades(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	ctx := context.Background()
	host := registerTestUser(t, db, "cascade-host@app.com")
	guest := registerTestUser(t, db, "cascade-guest@app.com")

	party := createTestParty(t, db, host.ID)

	requestSvc, err := NewRequestService(db)
	require.NoError(t, err)
	_, err = requestSvc.Create(ctx, party.ID, guest.ID, "")
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.AuthToken{UserID: host.ID, Token: "cascade-token"}).Error)

	require.NoError(t, svc.Delete(ctx, host.ID))

	var parties, requests, tokens int64
	require.NoError(t, db.Model(&models.Party{}).Where("host_id = ?", host.ID).Count(&parties).Error)
	require.NoError(t, db.Model(&models.Request{}).Where("party_id = ?", party.ID).Count(&requests).Error)
	require.NoError(t, db.Model(&models.AuthToken{}).Where("user_id = ?", host.ID).Count(&tokens).Error)
	require.Zero(t, parties)
	require.Zero(t, requests)
	require.Zero(t, tokens)

	_, err = svc.Get(ctx, host.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAvatarLifecycle(t *testing.T) {
	db := openServiceTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	ctx := context.Background()
	user := registerTestUser(t, db, "avatar@app.com")

	_, _, err = svc.GetAvatar(ctx, user.ID)
	require.ErrorIs(t, err, ErrNoAvatar)

	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	require.NoError(t, svc.SetAvatar(ctx, user.ID, payload, "image/png"))

	data, contentType, err := svc.GetAvatar(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.Equal(t, "image/png", contentType)

	require.NoError(t, svc.ClearAvatar(ctx, user.ID))

	_, _, err = svc.GetAvatar(ctx, user.ID)
	require.ErrorIs(t, err, ErrNoAvatar)
}
