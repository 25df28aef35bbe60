package dto

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"folio/shared/constant"
)

// FileUpload is an uploaded file fully read into memory.
type FileUpload struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}

func (f FileUpload) MimeType() string {
	return f.ContentType
}

func (f FileUpload) Size() int64 {
	return int64(len(f.Content))
}

func (f FileUpload) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// FileUploadFromHeader reads a multipart file, sniffing the content type when the client sent none.
func FileUploadFromHeader(header *multipart.FileHeader) (FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return FileUpload{}, fmt.Errorf("opening uploaded file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return FileUpload{}, fmt.Errorf("reading uploaded file: %w", err)
	}

	contentType := header.Header.Get(constant.RequestHeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	return FileUpload{
		Name:        header.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}

// FileUploadsFromForm reads every file sent under key, in order.
func FileUploadsFromForm(form *multipart.Form, key string) ([]FileUpload, error) {
	if form == nil {
		return nil, nil
	}

	headers := form.File[key]
	uploads := make([]FileUpload, 0, len(headers))

	for _, header := range headers {
		upload, err := FileUploadFromHeader(header)
		if err != nil {
			return nil, err
		}

		uploads = append(uploads, upload)
	}

	return uploads, nil
}
