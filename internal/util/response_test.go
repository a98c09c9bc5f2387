package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
	}{
		{Validationf("bad %s", "input"), http.StatusBadRequest},
		{ErrVoucherNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", ErrProductNotFound), http.StatusNotFound},
		{ErrAttemptExists, http.StatusConflict},
		{ErrVoucherAlreadyRedeemed, http.StatusConflict},
		{ErrVoucherExpired, http.StatusConflict},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrAccountDisabled, http.StatusForbidden},
		{ErrPermissionDenied, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		HandleError(c, tc.err)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Code)
	}
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(ErrAttemptExists, ErrConflict))
	assert.False(t, errors.Is(ErrAttemptExists, ErrNotFound))
	assert.True(t, errors.Is(ErrAttemptNotFound, ErrNotFound))
	assert.True(t, errors.Is(Validationf("x"), ErrValidation))
}
