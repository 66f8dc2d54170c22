package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/images"
	"github.com/fatukunda/partytime/internal/services"
	appErrors "github.com/fatukunda/partytime/pkg/errors"
	"github.com/fatukunda/partytime/pkg/metrics"
	"github.com/fatukunda/partytime/pkg/response"
)

// PartyHandler exposes host-scoped party management endpoints.
type PartyHandler struct {
	parties *services.PartyService
}

func NewPartyHandler(db *gorm.DB) (*PartyHandler, error) {
	ps, err := services.NewPartyService(db)
	if err != nil {
		return nil, err
	}
	return &PartyHandler{parties: ps}, nil
}

type createPartyRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Category    string `json:"category" validate:"required,party_category"`
}

type updatePartyRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=120"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Category    *string `json:"category" validate:"omitempty,party_category"`
}

// POST /me/hosted_parties
func (h *PartyHandler) Create(c *gin.Context) {
	var body createPartyRequest
	if !bindAndValidate(c, &body) {
		return
	}

	party, err := h.parties.Create(requestContext(c), currentUserID(c), services.CreatePartyInput{
		Title:       body.Title,
		Description: body.Description,
		Address:     body.Address,
		Category:    body.Category,
	})
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Created(c, party)
}

// GET /me/hosted_parties
func (h *PartyHandler) List(c *gin.Context) {
	parties, err := h.parties.ListHosted(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, parties)
}

// GET /me/hosted_parties/:id
func (h *PartyHandler) Get(c *gin.Context) {
	party, err := h.parties.GetOwned(requestContext(c), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, party)
}

// PATCH /me/hosted_parties/:id
func (h *PartyHandler) Update(c *gin.Context) {
	var body updatePartyRequest
	if !bindUpdatePayload(c, services.PartyUpdatableFields, &body) {
		return
	}

	party, err := h.parties.Update(requestContext(c), c.Param("id"), currentUserID(c), services.UpdatePartyInput{
		Title:       body.Title,
		Description: body.Description,
		Address:     body.Address,
		Category:    body.Category,
	})
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, party)
}

// DELETE /me/hosted_parties/:id
func (h *PartyHandler) Delete(c *gin.Context) {
	if err := h.parties.Delete(requestContext(c), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "party deleted"})
}

// POST /me/hosted_parties/:id/images
func (h *PartyHandler) UploadPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("multipart form is required"))
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		response.Error(c, appErrors.NewBadRequest("at least one photo is required"))
		return
	}

	// Decode and validate the whole batch before anything is stored, so a
	// bad file never leaves a partial upload behind.
	uploads := make([]services.PhotoUpload, 0, len(files))
	for _, file := range files {
		if !images.AllowedFilename(file.Filename) {
			metrics.ImageUploads.WithLabelValues("party_photo", "failure").Inc()
			response.Error(c, serviceError(images.ErrUnsupportedFormat))
			return
		}

		data, err := readUpload(file)
		if err != nil {
			metrics.ImageUploads.WithLabelValues("party_photo", "failure").Inc()
			response.Error(c, serviceError(err))
			return
		}

		processed, contentType, err := images.ProcessPartyPhoto(data)
		if err != nil {
			metrics.ImageUploads.WithLabelValues("party_photo", "failure").Inc()
			response.Error(c, serviceError(err))
			return
		}

		uploads = append(uploads, services.PhotoUpload{Data: processed, ContentType: contentType})
	}

	photos, err := h.parties.AddPhotos(requestContext(c), c.Param("id"), currentUserID(c), uploads)
	if err != nil {
		metrics.ImageUploads.WithLabelValues("party_photo", "failure").Inc()
		response.Error(c, serviceError(err))
		return
	}

	metrics.ImageUploads.WithLabelValues("party_photo", "success").Add(float64(len(photos)))
	response.Created(c, photos)
}

// GET /parties/:id/images/:imageId
func (h *PartyHandler) GetPhoto(c *gin.Context) {
	photo, err := h.parties.GetPhoto(requestContext(c), c.Param("id"), c.Param("imageId"))
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	c.Data(http.StatusOK, photo.ContentType, photo.Data)
}

// DELETE /me/hosted_parties/:id/images/:imageId
func (h *PartyHandler) DeletePhoto(c *gin.Context) {
	err := h.parties.DeletePhoto(requestContext(c), c.Param("id"), currentUserID(c), c.Param("imageId"))
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "photo removed"})
}
