package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerview/ledgerview/internal/api/dto"
	"github.com/ledgerview/ledgerview/internal/directory"
	"github.com/ledgerview/ledgerview/internal/upload"
)

// UploadHandler accepts transaction file uploads.
type UploadHandler struct {
	uploads   *upload.Service
	directory *directory.Service
}

// NewUploadHandler creates the upload handler.
func NewUploadHandler(uploads *upload.Service, dir *directory.Service) *UploadHandler {
	return &UploadHandler{uploads: uploads, directory: dir}
}

// Upload handles POST /api/upload: multipart form with a "file" part and an
// optional "account_id" field overriding the current selection. Validation
// failures never reach the remote service.
func (h *UploadHandler) Upload(c *gin.Context) {
	accountID := c.PostForm("account_id")
	if accountID == "" {
		accountID = h.directory.Selected()
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError("please select both a file and an account"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("could not read uploaded file"))
		return
	}
	defer func() { _ = file.Close() }()

	message, err := h.uploads.Upload(c.Request.Context(), accountID, fileHeader.Filename, file)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{Message: message})
}
