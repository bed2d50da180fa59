package handlers

import (
	"io"
	"strings"

	"movie-collection/internal/services"
	"movie-collection/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const imageField = "image"

type UploadHandler struct {
	service  services.UploadService
	basePath string
	logger   *logrus.Logger
}

// NewUploadHandler serves poster uploads. basePath is the prefix the API is
// mounted under behind a proxy, used when building local image URLs.
func NewUploadHandler(service services.UploadService, basePath string, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		service:  service,
		basePath: strings.TrimRight(basePath, "/"),
		logger:   logger,
	}
}

// UploadImage godoc
// @Summary Upload a poster image
// @Description Upload a JPG, PNG, GIF or WebP image of at most 3MB and 2000x2000px
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Param user_id formData int false "Uploader"
// @Success 200 {object} utils.StandardResponse "Image uploaded successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid image"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /upload/image [post]
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile(imageField)
	if err != nil || fh.Size == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No image uploaded or upload error")
	}

	maxSize := h.service.MaxSize()
	if fh.Size > maxSize {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, services.FileTooLargeMessage(maxSize))
	}

	f, err := fh.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No image uploaded or upload error")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		h.logger.WithError(err).Error("Failed to read uploaded file")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No image uploaded or upload error")
	}

	var userID uint
	if v, err := parseUint(c.FormValue("user_id")); err == nil {
		userID = v
	}

	res, err := h.service.UploadImage(c.UserContext(), services.UploadInput{
		OriginalName: fh.Filename,
		Data:         data,
		UserID:       userID,
		BaseURL:      h.baseURL(c),
	})
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to upload image")
	}

	payload := fiber.Map{
		"image_url": res.URL,
		"image_info": fiber.Map{
			"filename":      res.Filename,
			"original_name": res.OriginalName,
			"file_type":     res.FileType,
			"file_size":     res.FileSize,
			"dimensions": fiber.Map{
				"width":  res.Width,
				"height": res.Height,
			},
			"uploaded_at": utils.FormatTimestamp(res.UploadedAt),
		},
	}
	if res.ImageID != 0 {
		payload["image_id"] = res.ImageID
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Image uploaded successfully", payload)
}

// baseURL is scheme://host[/base] of the current request.
func (h *UploadHandler) baseURL(c *fiber.Ctx) string {
	scheme := c.Protocol()
	if proto := c.Get(fiber.HeaderXForwardedProto); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + c.Hostname() + h.basePath
}
