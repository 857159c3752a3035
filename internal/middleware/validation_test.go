package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salespulse/internal/errors"
	api "salespulse/pkg/contracts/api/v1"
)

func TestValidator_DecodeJSON(t *testing.T) {
	v := NewValidator(discardLogger())

	var req api.AnalyzeRequest
	r := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"data":[{"ITNAME":"Agas"}]}`))
	require.NoError(t, v.DecodeJSON(r, &req))
	assert.JSONEq(t, `[{"ITNAME":"Agas"}]`, string(req.Data))
}

func TestValidator_DecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed", `{"data":`, "INVALID_REQUEST"},
		{"missing data", `{"rows":[]}`, "VALIDATION_FAILED"},
		{"empty body", ``, "INVALID_REQUEST"},
	}

	v := NewValidator(discardLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req api.AnalyzeRequest
			r := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tt.body))
			if tt.body == "" {
				r.Body = http.NoBody
			}

			err := v.DecodeJSON(r, &req)

			var apiErr *apperrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		})
	}
}

func TestValidator_DecodeJSONTooLarge(t *testing.T) {
	v := NewValidator(discardLogger())
	r := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"data":[1,2,3,4,5,6,7,8,9]}`))
	r.Body = http.MaxBytesReader(httptest.NewRecorder(), r.Body, 8)

	var req api.AnalyzeRequest
	err := v.DecodeJSON(r, &req)

	var maxBytes *http.MaxBytesError
	assert.ErrorAs(t, err, &maxBytes)
}

func TestValidator_ValidateStructMessages(t *testing.T) {
	v := NewValidator(discardLogger())

	err := v.ValidateStruct(&api.AnalyzeQuery{Format: "docx"})

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	details := apiErr.Details.([]apperrors.ValidationError)
	require.Len(t, details, 1)
	assert.Equal(t, "format", details[0].Field)
	assert.Equal(t, "format must be one of: pdf, html, xlsx, csv, json", details[0].Message)
}
