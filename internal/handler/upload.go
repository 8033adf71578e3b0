package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docpilot/internal/domain"
	"docpilot/internal/service"
)

// multipartOverhead allows for form fields and part headers around the file.
const multipartOverhead = 1 << 20

// readUpload reads the "document" form file through the intake. The request
// body is capped so an oversized upload is rejected while it streams in.
func readUpload(c *gin.Context, intake service.FileIntake) (*domain.UploadedFile, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, intake.MaxBytes()+multipartOverhead)

	file, header, err := c.Request.FormFile("document")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &domain.FileTooLargeError{Limit: intake.MaxBytes(), Actual: c.Request.ContentLength}
		}
		return nil, domain.ErrMissingFile
	}
	defer func() { _ = file.Close() }()

	return intake.Accept(c.Request.Context(), service.FileInput{
		Name:         header.Filename,
		DeclaredType: header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
	})
}
