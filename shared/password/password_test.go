package password_test

import (
	"strings"
	"testing"

	"folio/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery", hash)
	assert.NoError(t, password.Verify("correct horse battery", hash))
	assert.ErrorIs(t, password.Verify("correct horse battery!", hash), password.ErrInvalidPassword)

	again, err := password.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes are salted")
}

func TestHashRejects(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)

	_, err = password.Hash(strings.Repeat("a", password.MaxLength+1))
	assert.ErrorIs(t, err, password.ErrTooLong)

	_, err = password.Hash(strings.Repeat("a", password.MaxLength))
	assert.NoError(t, err)
}

func TestVerifyEdgeCases(t *testing.T) {
	hash, err := password.Hash("secret-password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		invalid  bool
	}{
		{name: "empty password", password: "", hash: hash, invalid: true},
		{name: "empty hash", password: "secret-password", hash: "", invalid: true},
		{name: "not a bcrypt hash", password: "secret-password", hash: "plaintext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)
			require.Error(t, err)

			if tt.invalid {
				assert.ErrorIs(t, err, password.ErrInvalidPassword)
			} else {
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
			}
		})
	}
}

func TestVerifyAbsentAlwaysFails(t *testing.T) {
	assert.ErrorIs(t, password.VerifyAbsent("anything"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.VerifyAbsent(""), password.ErrInvalidPassword)
}
