package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JHanslik/restaurants-back/internal/api/metrics"
	"github.com/JHanslik/restaurants-back/internal/core/domain"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

// multipartField is the form field carrying the uploaded images.
const multipartField = "images"

// ImageHandler handles upload and deletion of restaurant images.
type ImageHandler struct {
	service ports.RestaurantService
}

func NewImageHandler(service ports.RestaurantService) *ImageHandler {
	return &ImageHandler{service: service}
}

// Upload handles POST /api/restaurants/:id/images.
//
// @Summary      Upload images to a restaurant
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Restaurant id"
// @Param        images  formData  file    true  "Up to 5 JPG/PNG/WebP files"
// @Success      200  {object}  domain.Restaurant
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id}/images [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}
	headers := form.File[multipartField]
	if len(headers) == 0 {
		return domain.Validationf("no file provided in field %q", multipartField)
	}

	files := make([]ports.UploadFile, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file: "+fh.Filename)
		}
		defer src.Close()

		files = append(files, ports.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      src,
		})
	}

	r, err := h.service.UploadImages(c.Request().Context(), c.Param("id"), user.ID, files)
	if err != nil {
		return err
	}

	metrics.ImagesUploadedTotal.Add(float64(len(files)))
	return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /api/restaurants/:id/images/:imageId. The image
// reference may be the embedded entry id or the delegate public id.
//
// @Summary      Delete a restaurant image
// @Tags         images
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string  true  "Restaurant id"
// @Param        imageId  path  string  true  "Image entry id or public id"
// @Success      200  {object}  domain.Restaurant
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id}/images/{imageId} [delete]
func (h *ImageHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	r, err := h.service.DeleteImage(c.Request().Context(), c.Param("id"), user.ID, c.Param("imageId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
