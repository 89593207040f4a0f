package utils_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul-624/FreshMart/utils"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("row not found")
	appErr := utils.NotFoundError("Product not found", cause)

	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Product not found: row not found", appErr.Error())
	assert.True(t, errors.Is(appErr, cause))

	assert.Equal(t, "Out of stock", utils.ConflictError("Out of stock", nil).Error())
}

func TestGetAppError(t *testing.T) {
	appErr := utils.BadRequestError("Invalid unit", nil)
	assert.Equal(t, appErr, utils.GetAppError(appErr))
	assert.Nil(t, utils.GetAppError(errors.New("plain")))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, utils.IsNotFoundError(utils.NotFoundError("missing", nil)))
	assert.False(t, utils.IsNotFoundError(utils.ConflictError("taken", nil)))
	assert.False(t, utils.IsNotFoundError(errors.New("plain")))
}

func TestWrapError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	wrapped := utils.WrapError(cause, "failed to send email")
	require.Error(t, wrapped)
	assert.Equal(t, "failed to send email: dial tcp: refused", wrapped.Error())
	assert.True(t, errors.Is(wrapped, cause))

	assert.NoError(t, utils.WrapError(nil, "ignored"))
}

func TestRespondErrorHonorsAppErrorCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	utils.RespondError(c, utils.ConflictError("Insufficient stock for Basmati Rice", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient stock for Basmati Rice")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	utils.RespondError(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
