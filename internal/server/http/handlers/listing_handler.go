package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/server/http/dto"
)

// ListingHandler manages listing lifecycle endpoints.
type ListingHandler struct {
	facade ListingFacade
}

// NewListingHandler constructs ListingHandler.
func NewListingHandler(facade ListingFacade) *ListingHandler {
	return &ListingHandler{facade: facade}
}

// Create handles POST /api/listings.
func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request body"})
		return
	}

	listing, err := h.facade.CreateListing(c.Request.Context(), CurrentUserID(c), req.Draft())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// List handles GET /api/listings.
//
// Query parameters select the view: id returns that listing in any status,
// donor returns every listing of a donor, claimedBy returns claims of a user,
// otherwise the active feed is returned, optionally narrowed by category.
func (h *ListingHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		listings []model.Listing
		err      error
	)
	switch {
	case c.Query("id") != "":
		var listing *model.Listing
		listing, err = h.facade.Listing(ctx, c.Query("id"))
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			listings, err = []model.Listing{}, nil
		case err == nil:
			listings = []model.Listing{*listing}
		}
	case c.Query("donor") != "":
		listings, err = h.facade.DonorListings(ctx, c.Query("donor"))
	case c.Query("claimedBy") != "":
		listings, err = h.facade.ClaimedListings(ctx, c.Query("claimedBy"))
	default:
		listings, err = h.facade.AvailableListings(ctx, strings.TrimSpace(c.Query("category")))
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	c.JSON(http.StatusOK, listings)
}

// Clusters handles GET /api/listings/clusters.
func (h *ListingHandler) Clusters(c *gin.Context) {
	clusters, err := h.facade.Clusters(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if clusters == nil {
		clusters = []model.MissionCluster{}
	}
	c.JSON(http.StatusOK, clusters)
}

// Claim handles POST /api/listings/:id/claim.
func (h *ListingHandler) Claim(c *gin.Context) {
	result, err := h.facade.ClaimListing(c.Request.Context(), c.Param("id"), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClaimResponse{
		Message: "Listing claimed successfully",
		Listing: result.Listing,
		OTP:     result.OTP,
		Impact:  dto.ClaimImpact{CO2Saved: result.Impact.CO2Saved},
	})
}

// Collect handles POST /api/listings/collect.
func (h *ListingHandler) Collect(c *gin.Context) {
	var req dto.CollectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ListingIDs == nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid listing ids"})
		return
	}

	result, err := h.facade.CollectListings(c.Request.Context(), req.ListingIDs, CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ids := result.IDs()
	c.JSON(http.StatusOK, dto.CollectResponse{
		Message:      "Listings collected successfully",
		Count:        len(ids),
		CollectedIDs: ids,
		Impact:       result.Impact,
	})
}
