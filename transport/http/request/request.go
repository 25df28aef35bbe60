// Package request holds helpers for reading multipart admin requests.
package request

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"folio/shared/constant"
	"folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/timezone"
)

// IsMultipart reports whether the request body is a multipart form.
func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData)
}

// ParseMultipart parses the multipart body, capping it at constant.RequestMaxUploadSize.
func ParseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxUploadSize)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return failure.TooLarge("upload exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes")
		}

		return failure.BadRequestFromString("invalid multipart form: " + err.Error())
	}

	return nil
}

// File returns the first file sent under key, or nil when there is none.
func File(r *http.Request, key string) (*dto.FileUpload, error) {
	files, err := Files(r, key)
	if err != nil || len(files) == 0 {
		return nil, err
	}

	return &files[0], nil
}

// Files returns every file sent under key in form order.
func Files(r *http.Request, key string) ([]dto.FileUpload, error) {
	files, err := dto.FileUploadsFromForm(r.MultipartForm, key)
	if err != nil {
		return nil, failure.BadRequest(err)
	}

	return files, nil
}

// OptionalString returns a pointer to the form value under key when the client sent it.
func OptionalString(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}

	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}

	return &values[0]
}

// OptionalTime parses the form value under key as RFC3339 or as a plain day.
func OptionalTime(r *http.Request, key string) (*time.Time, error) {
	value := OptionalString(r, key)
	if value == nil || *value == constant.Empty {
		return nil, nil
	}

	for _, layout := range []string{constant.DateFormat, constant.DayFormat} {
		if parsed, err := timezone.Parse(layout, *value); err == nil {
			return &parsed, nil
		}
	}

	return nil, failure.BadRequestFromString(key + " must be a date (YYYY-MM-DD) or an RFC3339 timestamp")
}
