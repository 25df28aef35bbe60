// Package validator decodes request bodies and checks them against go-playground struct tags.
// Besides the stock tags it knows mimetypes, maxfilesize and slug.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"folio/shared/base64"
	"folio/shared/constant"
	"folio/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMB = 1 << 20

var (
	validate = newValidate()
	slugRe   = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)
)

// upload is what the file rules need from an in-memory upload.
type upload interface {
	MimeType() string
	Size() int64
}

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// report json names so messages match what the client sent
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	rules := map[string]val.Func{
		"mimetypes":   validateMimeType,
		"maxfilesize": validateFileSize,
		"slug":        validateSlug,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("registering %s validation: %v", tag, err))
		}
	}

	return v
}

func contentType(value any) string {
	switch file := value.(type) {
	case multipart.FileHeader:
		return file.Header.Get(constant.RequestHeaderContentType)
	case *multipart.FileHeader:
		return file.Header.Get(constant.RequestHeaderContentType)
	case upload:
		return file.MimeType()
	case string:
		return base64.GetContentType(file)
	default:
		return ""
	}
}

func byteSize(value any) int64 {
	switch file := value.(type) {
	case multipart.FileHeader:
		return file.Size
	case *multipart.FileHeader:
		return file.Size
	case upload:
		return file.Size()
	case string:
		return int64(len(file))
	default:
		return 0
	}
}

func validateMimeType(field val.FieldLevel) bool {
	mime := contentType(field.Field().Interface())

	return mime != "" && slices.Contains(strings.Fields(field.Param()), mime)
}

// validateFileSize takes its limit in megabytes; fractions are allowed.
func validateFileSize(field val.FieldLevel) bool {
	limitMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return byteSize(field.Field().Interface()) <= int64(limitMB*bytesPerMB)
}

func validateSlug(field val.FieldLevel) bool {
	return slugRe.MatchString(field.Field().String())
}

// Validate decodes one JSON document from r into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is required")
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return asFailure(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return asFailure(validate.Var(field, tag))
}

func asFailure(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err))
}
