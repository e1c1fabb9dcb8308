package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JHanslik/restaurants-back/internal/api/metrics"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

// ReviewHandler handles the review ("avis") endpoints nested under a
// restaurant.
type ReviewHandler struct {
	service ports.RestaurantService
}

func NewReviewHandler(service ports.RestaurantService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Add handles POST /api/restaurants/:id/avis.
//
// @Summary      Add a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "Restaurant id"
// @Param        body  body  addReviewRequest  true  "Review"
// @Success      200  {object}  domain.Restaurant
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id}/avis [post]
func (h *ReviewHandler) Add(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r, err := h.service.AddReview(c.Request().Context(), c.Param("id"), user.ID, *req.Note, req.Comment)
	if err != nil {
		return err
	}

	metrics.ReviewsTotal.WithLabelValues("added").Inc()
	return c.JSON(http.StatusOK, r)
}

// Update handles PUT /api/restaurants/:id/avis/:avisId. Only the author
// may modify a review; absent fields keep their previous value.
//
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string               true  "Restaurant id"
// @Param        avisId  path  string               true  "Review id"
// @Param        body    body  updateReviewRequest  true  "Fields to change"
// @Success      200  {object}  domain.Restaurant
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id}/avis/{avisId} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	r, err := h.service.UpdateReview(c.Request().Context(), c.Param("id"), c.Param("avisId"), user.ID, ports.ReviewUpdate{
		Note:    req.Note,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}

	metrics.ReviewsTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /api/restaurants/:id/avis/:avisId.
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "Restaurant id"
// @Param        avisId  path  string  true  "Review id"
// @Success      200  {object}  domain.Restaurant
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id}/avis/{avisId} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	r, err := h.service.DeleteReview(c.Request().Context(), c.Param("id"), c.Param("avisId"), user.ID)
	if err != nil {
		return err
	}

	metrics.ReviewsTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, r)
}
