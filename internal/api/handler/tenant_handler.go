package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// TenantHandler handles HTTP requests for the tenant registry and the
// rating ledger.
type TenantHandler struct {
	tenants ports.TenantService
	ratings ports.RatingService
}

func NewTenantHandler(tenants ports.TenantService, ratings ports.RatingService) *TenantHandler {
	return &TenantHandler{tenants: tenants, ratings: ratings}
}

// Search handles GET /api/v1/tenants?search=.
//
// @Summary      Search tenants by name or national ID hash
// @Tags         tenants
// @Produce      json
// @Param        search  query     string  false  "Substring to match (case-insensitive)"
// @Success      200     {array}   tenantResponse
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/tenants [get]
func (h *TenantHandler) Search(c echo.Context) error {
	views, err := h.tenants.SearchTenants(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}

	resp := make([]tenantResponse, 0, len(views))
	for i := range views {
		resp = append(resp, toTenantResponse(&views[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/tenants/:id.
//
// @Summary      Get tenant details with ratings and average score
// @Tags         tenants
// @Produce      json
// @Param        id   path      string  true  "Tenant id"
// @Success      200  {object}  tenantResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/tenants/{id} [get]
func (h *TenantHandler) Get(c echo.Context) error {
	view, err := h.tenants.GetTenant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTenantResponse(view))
}

// Create handles POST /api/v1/tenants.
//
// @Summary      Create a tenant record
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTenantRequest  true  "Tenant details"
// @Success      201   {object}  tenantResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/tenants [post]
func (h *TenantHandler) Create(c echo.Context) error {
	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.tenants.CreateTenant(c.Request().Context(), ports.CreateTenantInput{
		Name:           req.Name,
		NationalIDHash: req.NationalIDHash,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTenantResponse(view))
}

// Rate handles POST /api/v1/tenants/:id/ratings. The rating's author is the
// authenticated caller; the pair (tenant, author) may be rated at most once.
//
// @Summary      Rate a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Tenant id"
// @Param        body  body      createRatingRequest  true  "Rating"
// @Success      201   {object}  ratingResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/tenants/{id}/ratings [post]
func (h *TenantHandler) Rate(c echo.Context) error {
	userID, _, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.ratings.RateTenant(c.Request().Context(), ports.RateTenantInput{
		TenantID:   c.Param("id"),
		LandlordID: userID,
		Score:      req.Score,
		Comment:    req.Comment,
		ProofURL:   req.ProofURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toRatingResponse(view))
}
