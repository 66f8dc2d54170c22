package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/fatukunda/partytime/internal/auth"
	"github.com/fatukunda/partytime/internal/database/testutil"
	"github.com/fatukunda/partytime/internal/models"
)

func TestRunOnceRemovesExpiredTokens(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	now := time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC)

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:   "maintenance-secret",
		TokenTTL: time.Hour,
		Clock:    func() time.Time { return now },
	})
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(db, jwtService, auth.TokenConfig{
		Clock: func() time.Time { return now },
	})
	require.NoError(t, err)

	user := models.User{
		FirstName: "Luka",
		LastName:  "M",
		Gender:    models.GenderMale,
		Email:     "cleanup@app.com",
		Password:  "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)

	expired := models.AuthToken{
		UserID:    user.ID,
		Token:     "expired-token",
		CreatedAt: now.Add(-2 * time.Hour),
	}
	active := models.AuthToken{
		UserID:    user.ID,
		Token:     "active-token",
		CreatedAt: now.Add(-10 * time.Minute),
	}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&active).Error)

	cleaner := NewCleaner(tokens)
	require.NoError(t, cleaner.RunOnce(context.Background()))

	var remaining []models.AuthToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, "active-token", remaining[0].Token)
}

func TestRunOnceWithoutTokenServiceIsNoop(t *testing.T) {
	cleaner := NewCleaner(nil)
	require.NoError(t, cleaner.RunOnce(context.Background()))
}

func TestStartRegistersCronJob(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	jwtService, err := auth.NewJWTService(auth.JWTConfig{Secret: "maintenance-secret"})
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(db, jwtService, auth.TokenConfig{})
	require.NoError(t, err)

	scheduler := cron.New()
	cleaner := NewCleaner(tokens, WithCron(scheduler), WithTokenSchedule("@every 1h"))

	require.NoError(t, cleaner.Start())
	require.Len(t, scheduler.Entries(), 1)

	<-cleaner.Stop().Done()
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	jwtService, err := auth.NewJWTService(auth.JWTConfig{Secret: "maintenance-secret"})
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(db, jwtService, auth.TokenConfig{})
	require.NoError(t, err)

	cleaner := NewCleaner(tokens, WithTokenSchedule("not-a-schedule"))
	require.Error(t, cleaner.Start())
}
