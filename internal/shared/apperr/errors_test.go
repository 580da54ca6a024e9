package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("X", "bad"), http.StatusBadRequest},
		{"authentication", Unauthenticated("X", "who"), http.StatusUnauthorized},
		{"authorization", Forbidden("X", "no"), http.StatusForbidden},
		{"not found", NotFound("X", "gone"), http.StatusNotFound},
		{"dependency", Dependency("X", "db", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("X", "gone")), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestSentinelSurvivesDetails(t *testing.T) {
	sentinel := Validation("MISSING_FIELDS", "Missing or invalid required fields")
	withDetails := sentinel.WithDetails(map[string]string{"name": "cannot be blank"})

	assert.True(t, errors.Is(withDetails, sentinel))
	assert.Equal(t, "MISSING_FIELDS", CodeOf(withDetails))
	assert.NotNil(t, withDetails.Details)
	assert.Nil(t, sentinel.Details)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Dependency("BAND_DB", "Failed to fetch band", nil).Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, "INTERNAL_ERROR", CodeOf(errors.New("x")))
}

func TestFromValidation(t *testing.T) {
	base := Validation("INVALID_FIELDS", "Missing or invalid required fields")

	assert.NoError(t, FromValidation(base, nil))

	req := struct{ Name string }{}
	err := FromValidation(base, validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required.Error("name is required")),
	))

	appErr := As(err)
	assert.Equal(t, "INVALID_FIELDS", appErr.Code)
	assert.Equal(t, map[string]string{"Name": "name is required"}, appErr.Details)
	assert.Equal(t, 400, HTTPStatus(err))
}

func TestFromBind(t *testing.T) {
	base := Validation("INVALID_REQUEST", "Invalid request body")

	var body struct {
		Year int `json:"year_founded"`
	}

	t.Run("wrong type names the field", func(t *testing.T) {
		err := FromBind(base, json.Unmarshal([]byte(`{"year_founded":"abc"}`), &body))

		assert.ErrorIs(t, err, base)
		assert.Equal(t, map[string]string{"year_founded": "must be a number"}, err.Details)
	})

	t.Run("malformed body", func(t *testing.T) {
		err := FromBind(base, json.Unmarshal([]byte(`{"year_founded":`), &body))

		assert.Equal(t, map[string]string{"body": "malformed JSON"}, err.Details)
	})

	t.Run("other decoding errors keep their text", func(t *testing.T) {
		err := FromBind(base, errors.New("EOF"))

		assert.Equal(t, "EOF", err.Details)
		assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	})
}
