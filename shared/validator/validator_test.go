package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewRequest struct {
	Name   string `json:"name"   validate:"required,max=100"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Ayu","email":"ayu@example.com","rating":5}`},
		{name: "missing name", body: `{"rating":4}`, wantErr: "name is required"},
		{name: "rating too high", body: `{"name":"Ayu","rating":6}`, wantErr: "rating must be less than or equal to 5"},
		{name: "bad email", body: `{"name":"Ayu","email":"nope","rating":3}`, wantErr: "email must be a valid email address"},
		{name: "empty body", body: ``, wantErr: "request body is required"},
		{name: "malformed json", body: `{"name":`, wantErr: "failed to decode request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req reviewRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Ayu", req.Name)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateVar_Slug(t *testing.T) {
	for _, name := range []string{"hero", "about-intro", "footer_note", "section2"} {
		assert.NoError(t, validator.ValidateVar(name, "required,max=64,slug"), name)
	}

	for _, name := range []string{"", "Hero", "has space", "a/b", "-lead", "trail_", "a--b"} {
		err := validator.ValidateVar(name, "required,max=64,slug")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), name)
	}
}

type changePassword struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,nefield=CurrentPassword"`
}

func TestValidateStruct_Messages(t *testing.T) {
	err := validator.ValidateStruct(&changePassword{CurrentPassword: "hunter22", NewPassword: "hunter22"})
	assert.EqualError(t, err, "new_password must differ from CurrentPassword")

	type card struct {
		Currency string `json:"currency" validate:"len=3,uppercase"`
	}

	assert.EqualError(t, validator.ValidateStruct(&card{Currency: "usd"}), "currency must be uppercase")
	assert.EqualError(t, validator.ValidateStruct(&card{Currency: "US"}), "currency must have length 3")
}

type uploadRequest struct {
	Cover  *dto.FileUpload `json:"cover"  validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
	Inline string          `json:"inline" validate:"omitempty,mimetypes=image/png"`
}

func TestFileRules(t *testing.T) {
	png := dto.FileUpload{Name: "cover.png", ContentType: "image/png", Content: []byte("png")}
	gif := dto.FileUpload{Name: "cover.gif", ContentType: "image/gif", Content: []byte("gif")}
	huge := dto.FileUpload{Name: "huge.png", ContentType: "image/png", Content: make([]byte, 2<<20)}

	tests := []struct {
		name    string
		data    uploadRequest
		wantErr string
	}{
		{name: "allowed type", data: uploadRequest{Cover: &png}},
		{name: "missing cover", data: uploadRequest{}, wantErr: "cover is required"},
		{name: "disallowed type", data: uploadRequest{Cover: &gif}, wantErr: "cover must be one of image/png image/jpeg"},
		{name: "too large", data: uploadRequest{Cover: &huge}, wantErr: "cover must not be larger than 1 MB"},
		{name: "inline data url", data: uploadRequest{Cover: &png, Inline: "data:image/png;base64,cG5n"}},
		{name: "inline wrong type", data: uploadRequest{Cover: &png, Inline: "data:text/plain;base64,cG5n"}, wantErr: "inline must be one of image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
