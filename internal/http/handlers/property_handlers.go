package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/http/middleware"
)

// PropertyHandlers handles listing and inquiry endpoints
type PropertyHandlers struct {
	listings domain.ListingService
}

// NewPropertyHandlers creates new property handlers
func NewPropertyHandlers(listings domain.ListingService) *PropertyHandlers {
	return &PropertyHandlers{listings: listings}
}

// Search serves the public search with optional query filters
func (h *PropertyHandlers) Search(c *gin.Context) {
	filter := domain.PropertySearch{
		City:             c.Query("city"),
		PropertyType:     c.Query("propertyType"),
		RoomType:         c.Query("roomType"),
		GenderPreference: c.Query("genderPreference"),
	}
	var err error
	if filter.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		writeError(c, http.StatusBadRequest, "minPrice must be a number")
		return
	}
	if filter.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		writeError(c, http.StatusBadRequest, "maxPrice must be a number")
		return
	}

	props, err := h.listings.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// Get serves one property
func (h *PropertyHandlers) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.listings.Property(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create adds a listing for the signed-in owner
func (h *PropertyHandlers) Create(c *gin.Context) {
	var draft domain.PropertyDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.listings.CreateProperty(c.Request.Context(), middleware.UserID(c), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Owner lists the signed-in owner's properties
func (h *PropertyHandlers) Owner(c *gin.Context) {
	props, err := h.listings.OwnerProperties(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// Inquire stores a seeker's question about a property
func (h *PropertyHandlers) Inquire(c *gin.Context) {
	var req domain.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := h.listings.SendInquiry(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, in)
}

// OwnerInquiries lists questions about the owner's properties
func (h *PropertyHandlers) OwnerInquiries(c *gin.Context) {
	list, err := h.listings.OwnerInquiries(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func queryFloat(c *gin.Context, key string) (float64, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}
