package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/route2rise/leaddesk/internal/api/metrics"
	"github.com/route2rise/leaddesk/internal/core/domain"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

const defaultListLimit = 50

// LeadHandler handles HTTP requests for lead operations. All routes sit
// behind the Auth middleware.
type LeadHandler struct {
	service ports.LeadService
}

func NewLeadHandler(service ports.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// Create handles POST /leads.
//
// @Summary      Create a new lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLeadRequest  true  "Lead details"
// @Success      201   {object}  leadResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	founder, err := ctxFounder(c)
	if err != nil {
		return err
	}

	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	lead, err := h.service.Create(c.Request().Context(), toCreateInput(req, founder))
	if err != nil {
		return mapLeadError(c, err)
	}

	metrics.LeadsCreatedTotal.WithLabelValues(string(lead.Status)).Inc()
	return c.JSON(http.StatusCreated, toLeadResponse(lead))
}

// List handles GET /leads.
//
// @Summary      List leads with pagination and filters
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        skip         query     int     false  "Offset (default 0)"
// @Param        limit        query     int     false  "Page size, 1-100 (default 50)"
// @Param        status       query     string  false  "Filter by status"
// @Param        sector       query     string  false  "Filter by sector"
// @Param        assigned_to  query     string  false  "Filter by owner"
// @Param        search       query     string  false  "Substring match on company name, email, or mobile number"
// @Success      200          {object}  listLeadsResponse
// @Failure      401          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	skip, err := intQueryParam(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := intQueryParam(c, "limit", defaultListLimit)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListLeadsInput{
		Skip:       skip,
		Limit:      limit,
		Status:     c.QueryParam("status"),
		Sector:     c.QueryParam("sector"),
		AssignedTo: c.QueryParam("assigned_to"),
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return mapLeadError(c, err)
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /leads/:id.
//
// @Summary      Get a lead by ID
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      string  true   "Lead ID"
// @Param        include_deleted  query     bool    false  "Include soft-deleted leads"
// @Success      200              {object}  leadResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	includeDeleted, _ := strconv.ParseBool(c.QueryParam("include_deleted"))

	lead, err := h.service.Get(c.Request().Context(), c.Param("id"), includeDeleted)
	if err != nil {
		return mapLeadError(c, err)
	}

	return c.JSON(http.StatusOK, toLeadResponse(lead))
}

// Update handles PUT /leads/:id — a partial update, not a full replacement.
//
// @Summary      Update lead fields
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Lead ID"
// @Param        body  body      updateLeadRequest  true  "Fields to change"
// @Success      200   {object}  leadResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	var req updateLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	lead, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateFields(req))
	if err != nil {
		return mapLeadError(c, err)
	}

	metrics.LeadMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toLeadResponse(lead))
}

// AddInteraction handles POST /leads/:id/interaction. Action and notes
// arrive as query parameters.
//
// @Summary      Append an interaction to a lead's history
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Lead ID"
// @Param        action  query     string  true   "Action label"
// @Param        notes   query     string  false  "Optional notes"
// @Success      200     {object}  leadResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /leads/{id}/interaction [post]
func (h *LeadHandler) AddInteraction(c echo.Context) error {
	lead, err := h.service.AddInteraction(
		c.Request().Context(),
		c.Param("id"),
		c.QueryParam("action"),
		c.QueryParam("notes"),
	)
	if err != nil {
		return mapLeadError(c, err)
	}

	metrics.LeadMutationsTotal.WithLabelValues("interaction").Inc()
	return c.JSON(http.StatusOK, toLeadResponse(lead))
}

// Delete handles DELETE /leads/:id — a soft delete; the record and its
// history persist.
//
// @Summary      Soft-delete a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Lead ID"
// @Success      200 {object}  deleteLeadResponse
// @Failure      401 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	if _, err := h.service.SoftDelete(c.Request().Context(), c.Param("id")); err != nil {
		return mapLeadError(c, err)
	}

	metrics.LeadMutationsTotal.WithLabelValues("soft_delete").Inc()
	return c.JSON(http.StatusOK, deleteLeadResponse{Message: "Lead deleted successfully"})
}

// mapLeadError renders known domain errors; anything else propagates to the
// central error handler.
func mapLeadError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrLeadNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "lead not found"})
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}
	return err
}

// intQueryParam parses an integer query parameter, returning def when absent.
func intQueryParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, name+" must be an integer")
	}
	return v, nil
}
