package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// maxFilesPerUpload caps one multipart batch.
const maxFilesPerUpload = 10

// UploadHandler handles image ingestion for listings.
type UploadHandler struct {
	service ports.MediaService
}

func NewUploadHandler(service ports.MediaService) *UploadHandler {
	return &UploadHandler{service: service}
}

type uploadImagesResponse struct {
	URLs []string `json:"urls"`
}

// UploadImages handles POST /api/v1/upload/images: multipart form with up
// to ten files under the "images" field. The call is all-or-nothing: one
// invalid or failed file fails the whole batch.
//
// @Summary      Upload property images
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        images  formData  file  true  "Image files (jpeg/png/webp, max 5 MiB each, up to 10)"
// @Success      201     {object}  uploadImagesResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /api/v1/upload/images [post]
func (h *UploadHandler) UploadImages(c echo.Context) error {
	if _, _, err := ctxUser(c); err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) > maxFilesPerUpload {
		return echo.NewHTTPError(http.StatusBadRequest, "too many files: at most 10 per upload")
	}

	files := make([]ports.FileInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file: "+fh.Filename)
		}
		defer f.Close()

		files = append(files, ports.FileInput{
			Reader:       f,
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get("Content-Type"),
			Size:         fh.Size,
		})
	}

	urls, err := h.service.UploadImages(c.Request().Context(), files)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadImagesResponse{URLs: urls})
}
