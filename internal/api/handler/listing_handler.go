package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// ListingHandler handles HTTP requests for the listing catalog.
type ListingHandler struct {
	service ports.ListingService
}

func NewListingHandler(service ports.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// List handles GET /api/v1/listings?location=&minRent=&maxRent=.
//
// @Summary      List property listings with optional filters
// @Tags         listings
// @Produce      json
// @Param        location  query     string  false  "Location substring (case-insensitive)"
// @Param        minRent   query     number  false  "Minimum rent"
// @Param        maxRent   query     number  false  "Maximum rent"
// @Success      200       {array}   listingResponse
// @Failure      400       {object}  map[string]string
// @Router       /api/v1/listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	filter := ports.ListingFilter{Location: c.QueryParam("location")}

	if raw := c.QueryParam("minRent"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "minRent must be a number")
		}
		filter.MinRent = &v
	}
	if raw := c.QueryParam("maxRent"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "maxRent must be a number")
		}
		filter.MaxRent = &v
	}

	views, err := h.service.ListListings(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := make([]listingResponse, 0, len(views))
	for i := range views {
		resp = append(resp, toListingResponse(&views[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/listings/:id.
//
// @Summary      Get a listing by id
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  listingResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	view, err := h.service.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListingResponse(view))
}

// Create handles POST /api/v1/listings.
//
// @Summary      Publish a new listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing details"
// @Success      201   {object}  listingResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.CreateListing(c.Request().Context(), ports.CreateListingInput{
		Title:      req.Title,
		Rent:       req.Rent,
		Location:   req.Location,
		Pictures:   req.Pictures,
		LandlordID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toListingResponse(view))
}

// Update handles PUT /api/v1/listings/:id. Only the owner may update;
// existence is checked before ownership.
//
// @Summary      Update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Listing id"
// @Param        body  body      updateListingRequest  true  "Fields to update"
// @Success      200   {object}  listingResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.UpdateListing(c.Request().Context(), c.Param("id"), userID, ports.ListingPatch{
		Title:    req.Title,
		Rent:     req.Rent,
		Location: req.Location,
		Pictures: req.Pictures,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListingResponse(view))
}

// Delete handles DELETE /api/v1/listings/:id.
//
// @Summary      Delete a listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  deleteListingResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteListing(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteListingResponse{Message: "listing deleted successfully"})
}
