package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/services"
	"github.com/fatukunda/partytime/pkg/response"
)

// RequestHandler exposes attendance request endpoints for requestors and hosts.
type RequestHandler struct {
	requests *services.RequestService
}

func NewRequestHandler(db *gorm.DB) (*RequestHandler, error) {
	rs, err := services.NewRequestService(db)
	if err != nil {
		return nil, err
	}
	return &RequestHandler{requests: rs}, nil
}

type createRequestRequest struct {
	Message string `json:"message" validate:"omitempty,max=500"`
}

type resolveRequestRequest struct {
	Status  string  `json:"status" validate:"required"`
	Message *string `json:"message" validate:"omitempty,max=500"`
}

// POST /parties/:id/requests
func (h *RequestHandler) Create(c *gin.Context) {
	var body createRequestRequest
	if !bindAndValidate(c, &body) {
		return
	}

	request, err := h.requests.Create(requestContext(c), c.Param("id"), currentUserID(c), body.Message)
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Created(c, request)
}

// GET /me/requests
func (h *RequestHandler) ListMine(c *gin.Context) {
	requests, err := h.requests.ListForRequestor(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, requests)
}

// GET /me/requests/:id
func (h *RequestHandler) GetMine(c *gin.Context) {
	request, err := h.requests.GetForRequestor(requestContext(c), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, request)
}

// GET /me/parties/:id/requests_received
func (h *RequestHandler) ListReceived(c *gin.Context) {
	requests, err := h.requests.ListReceived(requestContext(c), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, requests)
}

// GET /me/parties/:id/requests_received/:request_id
func (h *RequestHandler) GetReceived(c *gin.Context) {
	request, err := h.requests.GetReceived(requestContext(c), c.Param("request_id"), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, request)
}

// PATCH /me/parties/:id/requests_received/:request_id
func (h *RequestHandler) Resolve(c *gin.Context) {
	var body resolveRequestRequest
	if !bindUpdatePayload(c, services.RequestResolutionFields, &body) {
		return
	}

	request, err := h.requests.Resolve(requestContext(c), c.Param("request_id"), c.Param("id"), currentUserID(c), services.ResolveRequestInput{
		Status:  body.Status,
		Message: body.Message,
	})
	if err != nil {
		response.Error(c, serviceError(err))
		return
	}
	response.Success(c, http.StatusOK, request)
}
