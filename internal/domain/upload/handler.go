package upload

import (
	"errors"
	"net/http"

	"eventvenue/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes image uploads over multipart HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload an image
// @Description Upload one jpg/jpeg/png/gif/webp image (max 10MB). Returns its public URL.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param subdir path string true "Target sub-directory, e.g. venues"
// @Param file formData file true "Image to upload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,413,500 {object} map[string]interface{}
// @Router /uploads/{subdir} [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "no file provided")
		return
	}

	url, err := h.service.UploadOne(c.Request.Context(), FromFileHeader(fileHeader), c.Param("subdir"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}

// UploadBatch godoc
// @Summary Upload several images
// @Description Empty parts are skipped. The first invalid image fails the whole request.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param subdir path string true "Target sub-directory"
// @Param files formData file true "Images (repeat the field)"
// @Success 201 {object} map[string]interface{}
// @Failure 400,413,500 {object} map[string]interface{}
// @Router /uploads/{subdir}/batch [post]
func (h *Handler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "multipart form expected")
		return
	}

	headers := form.File["files"]
	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		files = append(files, FromFileHeader(fh))
	}

	urls, err := h.service.UploadMany(c.Request.Context(), files, c.Param("subdir"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"urls": urls})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	default:
		// picked up by middleware.ErrorLogger
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "upload failed")
	}
}
