package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/auth"
	"github.com/fatukunda/partytime/internal/images"
	"github.com/fatukunda/partytime/internal/services"
	appErrors "github.com/fatukunda/partytime/pkg/errors"
	"github.com/fatukunda/partytime/pkg/metrics"
	"github.com/fatukunda/partytime/pkg/response"
)

const dateLayout = "2006-01-02"

// UserHandler exposes registration, login, profile and avatar endpoints.
type UserHandler struct {
	users  *services.UserService
	tokens *auth.TokenService
}

func NewUserHandler(db *gorm.DB, tokens *auth.TokenService) (*UserHandler, error) {
	us, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}
	return &UserHandler{users: us, tokens: tokens}, nil
}

type registerUserRequest struct {
	FirstName   string `json:"first_name" validate:"required,alpha"`
	LastName    string `json:"last_name" validate:"required,alpha"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"required,gender"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,password"`
	Bio         string `json:"bio" validate:"omitempty,max=500"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,alpha"`
	LastName    *string `json:"last_name" validate:"omitempty,alpha"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender" validate:"omitempty,gender"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,e164"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,password"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
}

type sessionResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var body registerUserRequest
	if !bindAndValidate(c, &body) {
		return
	}

	dob, err := time.Parse(dateLayout, body.DateOfBirth)
	if err != nil {
		response.Error(c, appErrors.NewValidation("date of birth must be a date in the form YYYY-MM-DD"))
		return
	}

	user, err := h.users.Register(requestContext(c), services.RegisterUserInput{
		FirstName:   strings.TrimSpace(body.FirstName),
		LastName:    strings.TrimSpace(body.LastName),
		DateOfBirth: dob,
		Gender:      body.Gender,
		PhoneNumber: strings.TrimSpace(body.PhoneNumber),
		Email:       body.Email,
		Password:    body.Password,
		Bio:         body.Bio,
	})
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}

	token, err := h.tokens.Issue(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}

	response.Created(c, sessionResponse{User: user, Token: token})
}

// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var body loginRequest
	if !bindAndValidate(c, &body) {
		return
	}

	user, err := h.users.Authenticate(requestContext(c), body.Email, body.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, serviceError(err))
		return
	}
	metrics.AuthAttempts.WithLabelValues("success").Inc()

	token, err := h.tokens.Issue(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}

	response.Success(c, http.StatusOK, sessionResponse{User: user, Token: token})
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// PATCH /users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var body updateUserRequest
	if !bindUpdatePayload(c, services.UserUpdatableFields, &body) {
		return
	}

	input := services.UpdateUserInput{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Gender:      body.Gender,
		PhoneNumber: body.PhoneNumber,
		Email:       body.Email,
		Password:    body.Password,
		Bio:         body.Bio,
	}
	if body.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *body.DateOfBirth)
		if err != nil {
			response.Error(c, appErrors.NewValidation("date of birth must be a date in the form YYYY-MM-DD"))
			return
		}
		input.DateOfBirth = &dob
	}

	user, err := h.users.Update(requestContext(c), currentUserID(c), input)
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DELETE /users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.users.Delete(requestContext(c), currentUserID(c)); err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "account deleted"})
}

// POST /users/me/logout
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.tokens.Revoke(requestContext(c), currentUserID(c), presentedToken(c)); err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// POST /users/me/logoutall
func (h *UserHandler) LogoutAll(c *gin.Context) {
	if _, err := h.tokens.RevokeAll(requestContext(c), currentUserID(c)); err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "logged out of all devices"})
}

// POST /users/me/avatar
func (h *UserHandler) SetAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("avatar file is required"))
		return
	}

	data, err := readUpload(file)
	if err != nil {
		metrics.ImageUploads.WithLabelValues("avatar", "failure").Inc()
		response.Error(c, serviceError(err))
		return
	}

	if !images.AllowedFilename(file.Filename) {
		metrics.ImageUploads.WithLabelValues("avatar", "failure").Inc()
		response.Error(c, serviceError(images.ErrUnsupportedFormat))
		return
	}

	processed, contentType, err := images.ProcessAvatar(data)
	if err != nil {
		metrics.ImageUploads.WithLabelValues("avatar", "failure").Inc()
		response.Error(c, serviceError(err))
		return
	}

	if err := h.users.SetAvatar(requestContext(c), currentUserID(c), processed, contentType); err != nil {
		metrics.ImageUploads.WithLabelValues("avatar", "failure").Inc()
		response.Error(c, serviceError(err))
		return
	}

	metrics.ImageUploads.WithLabelValues("avatar", "success").Inc()
	response.Success(c, http.StatusOK, gin.H{"message": "avatar updated"})
}

// DELETE /users/me/avatar
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	if err := h.users.ClearAvatar(requestContext(c), currentUserID(c)); err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "avatar removed"})
}

// GET /users/:id/avatar
func (h *UserHandler) GetAvatar(c *gin.Context) {
	data, contentType, err := h.users.GetAvatar(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// readUpload rejects oversized files before buffering them in memory.
func readUpload(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > images.MaxUploadBytes {
		return nil, images.ErrTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, images.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > images.MaxUploadBytes {
		return nil, images.ErrTooLarge
	}
	return data, nil
}
