// Package handlers contains the gin handlers for the review API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerview/ledgerview/internal/api/dto"
	"github.com/ledgerview/ledgerview/internal/bookkeeper"
	"github.com/ledgerview/ledgerview/internal/upload"
)

// writeServiceError maps workflow errors onto HTTP responses: local
// validation failures are 400s, remote rejections keep the upstream status
// and message, anything else is a 502 with a generic transport message.
func writeServiceError(c *gin.Context, err error) {
	var validation *upload.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, dto.ValidationError(validation.Message))
		return
	}

	var remote *bookkeeper.RemoteError
	if errors.As(err, &remote) {
		status := http.StatusBadGateway
		if remote.IsValidation() {
			status = http.StatusBadRequest
		}
		c.JSON(status, dto.UpstreamError(remote.Message))
		return
	}

	c.JSON(http.StatusBadGateway, dto.UpstreamError(bookkeeper.RemoteMessage(err)))
}
