package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Elias0099/examenes-api/internal/shared"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{shared.ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrUnauthorized, http.StatusUnauthorized},
		{shared.ErrMalformedToken, http.StatusUnauthorized},
		{shared.ErrBadSignature, http.StatusUnauthorized},
		{shared.ErrExpiredToken, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{shared.ErrNotFound, http.StatusNotFound},
		{shared.ErrDuplicate, http.StatusConflict},
		{ErrValidation, http.StatusBadRequest},
		{shared.ErrTooManyAttempts, http.StatusTooManyRequests},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondError(rr, tc.err)
			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestRespondErrorWrappedErrorsStillMap(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, fmt.Errorf("load exam: %w", shared.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTokenFaultsNeverLeakDetail(t *testing.T) {
	for _, err := range []error{shared.ErrMalformedToken, shared.ErrBadSignature, shared.ErrExpiredToken} {
		rr := httptest.NewRecorder()
		RespondError(rr, err)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.NotContains(t, rr.Body.String(), "signature")
		assert.NotContains(t, rr.Body.String(), "expired")
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}
