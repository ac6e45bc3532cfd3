package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vendorhub/internal/domain"
	"vendorhub/internal/middleware"
	"vendorhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog under an authenticated group. Listing
// and reads are open to every role; visibility scoping happens in the
// service. Creation is vendor-only, review reviewer-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/products")
	{
		grp.GET("", h.List)
		grp.GET("/:id", h.Get)
	}

	grp.POST("", middleware.RequireRole(domain.RoleVendor), h.Create)
	grp.PUT("/:id/status", middleware.RequireReviewer(), h.Review)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.service.CreateProduct(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
		return
	}

	p, err := h.service.GetProduct(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var status *domain.ReviewStatus
	if raw := c.Query("status"); raw != "" {
		st := domain.ReviewStatus(raw)
		if !st.Valid() {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid status filter")
			return
		}
		status = &st
	}

	result, err := h.service.ListProducts(c.Request.Context(), middleware.ActorFrom(c), status, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Review(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.service.ReviewProduct(c.Request.Context(), middleware.ActorFrom(c), id, req.Decision)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error())
	case errors.Is(err, ErrVendorNotApproved):
		response.Error(c, http.StatusForbidden, "VENDOR_NOT_APPROVED", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrInvalidDecision), errors.Is(err, ErrInvalidPrice):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
