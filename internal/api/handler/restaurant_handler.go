package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/JHanslik/restaurants-back/internal/api/metrics"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

// RestaurantHandler handles the restaurant CRUD endpoints.
type RestaurantHandler struct {
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// Create handles POST /api/restaurants.
//
// @Summary      Create a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRestaurantRequest  true  "Restaurant fields"
// @Success      201   {object}  domain.Restaurant
// @Failure      400   {object}  map[string]string
// @Router       /restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), user.ID, toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.RestaurantsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// List handles GET /api/restaurants.
//
// @Summary      List own restaurants
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        page     query  int     false  "Page (1-based)"
// @Param        limit    query  int     false  "Page size"
// @Param        search   query  string  false  "Matches name, cuisine or city"
// @Param        cuisine  query  string  false  "Cuisine filter"
// @Param        ville    query  string  false  "City filter"
// @Param        noteMin  query  number  false  "Minimum average rating"
// @Param        sortBy   query  string  false  "Sort field (default createdAt)"
// @Param        order    query  string  false  "asc or desc (default desc)"
// @Success      200  {object}  listRestaurantsResponse
// @Failure      500  {object}  map[string]string
// @Router       /restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	in := ports.ListRestaurantsInput{
		OwnerID: user.ID,
		Search:  c.QueryParam("search"),
		Cuisine: c.QueryParam("cuisine"),
		Ville:   c.QueryParam("ville"),
		SortBy:  c.QueryParam("sortBy"),
		Order:   c.QueryParam("order"),
	}
	in.Page, _ = strconv.Atoi(c.QueryParam("page"))
	in.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if raw := c.QueryParam("noteMin"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "noteMin must be a number")
		}
		in.NoteMin = &min
	}

	result, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /api/restaurants/:id.
//
// @Summary      Get one restaurant
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Restaurant id"
// @Success      200  {object}  domain.Restaurant
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	r, err := h.service.Get(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Update handles PUT /api/restaurants/:id.
//
// @Summary      Update a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "Restaurant id"
// @Param        body  body  updateRestaurantRequest  true  "Partial fields"
// @Success      200  {object}  domain.Restaurant
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req updateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	r, err := h.service.Update(c.Request().Context(), c.Param("id"), user.ID, toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /api/restaurants/:id.
//
// @Summary      Delete a restaurant
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Restaurant id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "restaurant deleted"})
}
