package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"metalpedia-backend/internal/domains/media/model"
)

// FormFile reads an optional multipart file into memory.
// A missing field or a non-multipart body returns nil, nil.
// Per-kind caps are checked by the media service, kind only shapes the error.
func FormFile(c *gin.Context, field string, kind model.Kind) (*model.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, model.ErrInvalidUpload.Wrap(err)
	}

	if fh.Size > model.MaxUploadBytes {
		return nil, model.TooLarge(kind)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, model.ErrInvalidUpload.Wrap(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, model.MaxUploadBytes+1))
	if err != nil {
		return nil, model.ErrInvalidUpload.Wrap(err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &model.File{
		Name:        fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
