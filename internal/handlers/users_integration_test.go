package handlers_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatukunda/partytime/internal/handlers/testutil"
	"github.com/fatukunda/partytime/internal/models"
)

func TestRegisterLoginAndProfile(t *testing.T) {
	env := testutil.NewEnv(t)

	session := env.Register("luka@example.com", "testPass1234!")
	require.Equal(t, "luka@example.com", session.User.Email)

	w := env.Request(http.MethodGet, "/users/me", nil, session.Token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := testutil.DecodeResponse(t, w)

	// The profile payload must never leak credentials or avatar bytes.
	var profile map[string]any
	testutil.DecodeInto(t, resp.Data, &profile)
	require.Equal(t, "luka@example.com", profile["email"])
	require.NotContains(t, profile, "password")
	require.NotContains(t, profile, "avatar")

	login := env.Login("LUKA@example.com", "testPass1234!")
	require.Equal(t, session.User.ID, login.User.ID)
	require.NotEqual(t, session.Token, login.Token)
}

func TestRegisterRejectsPolicyViolations(t *testing.T) {
	env := testutil.NewEnv(t)

	payload := map[string]string{
		"first_name":    "Luka",
		"last_name":     "Mukasa",
		"date_of_birth": "1995-06-15",
		"gender":        "robot",
		"email":         "policy@example.com",
		"password":      "testPass1234!",
	}

	w := env.Request(http.MethodPost, "/users", payload, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	require.Contains(t, resp.Error.Message, "gender")

	payload["gender"] = "male"
	payload["password"] = "myPassword123"
	w = env.Request(http.MethodPost, "/users", payload, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp = testutil.DecodeResponse(t, w)
	require.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	require.Contains(t, resp.Error.Message, "password")

	// Neither rejected payload may have created the account.
	login := env.Request(http.MethodPost, "/users/login", map[string]string{
		"email": "policy@example.com", "password": "testPass1234!",
	}, "")
	require.Equal(t, http.StatusBadRequest, login.Code)
}

func TestUpdateProfileRejectsUnknownGender(t *testing.T) {
	env := testutil.NewEnv(t)
	session := env.Register("gender-edit@example.com", "testPass1234!")

	w := env.Request(http.MethodPatch, "/users/me", map[string]string{"gender": "robot"}, session.Token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestUnauthenticatedProfileAccess(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodGet, "/users/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	resp := testutil.DecodeResponse(t, w)
	require.False(t, resp.Success)
	require.Nil(t, resp.Data)
	require.Equal(t, "UNAUTHENTICATED", resp.Error.Code)
}

func TestLoginFailureIsUniform(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Register("uniform@example.com", "testPass1234!")

	unknown := env.Request(http.MethodPost, "/users/login", map[string]string{
		"email": "nobody@example.com", "password": "testPass1234!",
	}, "")
	wrong := env.Request(http.MethodPost, "/users/login", map[string]string{
		"email": "uniform@example.com", "password": "not-the-password1",
	}, "")

	require.Equal(t, http.StatusBadRequest, unknown.Code)
	require.Equal(t, http.StatusBadRequest, wrong.Code)
	require.JSONEq(t, unknown.Body.String(), wrong.Body.String())
}

func TestLogoutRevokesOnlyPresentedToken(t *testing.T) {
	env := testutil.NewEnv(t)

	first := env.Register("logout@example.com", "testPass1234!")
	second := env.Login("logout@example.com", "testPass1234!")

	w := env.Request(http.MethodPost, "/users/me/logout", nil, first.Token)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusUnauthorized,
		env.Request(http.MethodGet, "/users/me", nil, first.Token).Code)
	require.Equal(t, http.StatusOK,
		env.Request(http.MethodGet, "/users/me", nil, second.Token).Code)
}

func TestLogoutAllRevokesEveryToken(t *testing.T) {
	env := testutil.NewEnv(t)

	first := env.Register("logoutall@example.com", "testPass1234!")
	second := env.Login("logoutall@example.com", "testPass1234!")

	w := env.Request(http.MethodPost, "/users/me/logoutall", nil, second.Token)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusUnauthorized,
		env.Request(http.MethodGet, "/users/me", nil, first.Token).Code)
	require.Equal(t, http.StatusUnauthorized,
		env.Request(http.MethodGet, "/users/me", nil, second.Token).Code)
}

func TestProfileUpdateRejectsUnknownFields(t *testing.T) {
	env := testutil.NewEnv(t)
	session := env.Register("fields@example.com", "testPass1234!")

	w := env.Request(http.MethodPatch, "/users/me", map[string]any{
		"bio":     "new bio",
		"is_root": true,
	}, session.Token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, "INVALID_UPDATE_FIELDS", resp.Error.Code)

	// All-or-nothing: the allow-listed field must not have been applied.
	var user models.User
	require.NoError(t, env.DB.Take(&user, "id = ?", session.User.ID).Error)
	require.Empty(t, user.Bio)
}

func TestProfileUpdateAppliesAllowListedFields(t *testing.T) {
	env := testutil.NewEnv(t)
	session := env.Register("editable@example.com", "testPass1234!")

	w := env.Request(http.MethodPatch, "/users/me", map[string]any{
		"bio":    "Host of garden parties",
		"gender": "prefer not to say",
	}, session.Token)
	require.Equal(t, http.StatusOK, w.Code)

	resp := testutil.DecodeResponse(t, w)
	var profile map[string]any
	testutil.DecodeInto(t, resp.Data, &profile)
	require.Equal(t, "Host of garden parties", profile["bio"])
	require.Equal(t, "prefer not to say", profile["gender"])
}

func TestDeleteAccountCascades(t *testing.T) {
	env := testutil.NewEnv(t)
	session := env.Register("goodbye@example.com", "testPass1234!")

	w := env.Request(http.MethodDelete, "/users/me", nil, session.Token)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusUnauthorized,
		env.Request(http.MethodGet, "/users/me", nil, session.Token).Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Where("id = ?", session.User.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestAvatarLifecycleOverHTTP(t *testing.T) {
	env := testutil.NewEnv(t)
	session := env.Register("avatar-http@example.com", "testPass1234!")

	upload := env.RequestMultipart(http.MethodPost, "/users/me/avatar", []testutil.UploadFile{
		{Field: "avatar", Filename: "me.png", Content: testPNG(t, 400, 300)},
	}, session.Token)
	require.Equal(t, http.StatusOK, upload.Code, upload.Body.String())

	fetch := env.Request(http.MethodGet, "/users/"+session.User.ID+"/avatar", nil, "")
	require.Equal(t, http.StatusOK, fetch.Code)
	require.Equal(t, "image/png", fetch.Header().Get("Content-Type"))

	decoded, format, err := image.Decode(bytes.NewReader(fetch.Body.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 250, decoded.Bounds().Dx())
	require.Equal(t, 250, decoded.Bounds().Dy())

	// Identical bytes on repeated fetches.
	again := env.Request(http.MethodGet, "/users/"+session.User.ID+"/avatar", nil, "")
	require.Equal(t, fetch.Body.Bytes(), again.Body.Bytes())

	remove := env.Request(http.MethodDelete, "/users/me/avatar", nil, session.Token)
	require.Equal(t, http.StatusOK, remove.Code)

	gone := env.Request(http.MethodGet, "/users/"+session.User.ID+"/avatar", nil, "")
	require.Equal(t, http.StatusNotFound, gone.Code)
}

func TestAvatarUploadRejectsUnsupportedFile(t *testing.T) {
	env := testutil.NewEnv(t)
	session := env.Register("avatar-bad@example.com", "testPass1234!")

	w := env.RequestMultipart(http.MethodPost, "/users/me/avatar", []testutil.UploadFile{
		{Field: "avatar", Filename: "notes.txt", Content: []byte("not an image")},
	}, session.Token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// testPNG renders a small solid-colour PNG for upload tests.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
