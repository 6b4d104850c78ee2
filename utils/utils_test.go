package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	cases := map[float64]string{
		0:          "$0.00",
		12500.5:    "$12,500.50",
		999.999:    "$1,000.00",
		1234567.25: "$1,234,567.25",
		-42:        "-$42.00",
	}
	for amount, want := range cases {
		assert.Equal(t, want, FormatMoney("$", amount))
	}
	assert.Equal(t, "৳320.00", FormatMoney("৳", 320))
}

func TestTokenRoundTrip(t *testing.T) {
	InitLogger()
	token, err := GenerateToken("admin-1", "SUPER_ADMIN", "b1")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.StaffID)
	assert.Equal(t, "SUPER_ADMIN", claims.Role)
	assert.Equal(t, "b1", claims.BranchID)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	InitLogger()
	saved := TokenTTL
	TokenTTL = -time.Minute
	defer func() { TokenTTL = saved }()

	token, err := GenerateToken("admin-1", "SUPER_ADMIN", "b1")
	require.NoError(t, err)
	_, err = ParseToken(token)
	assert.EqualError(t, err, "invalid or expired token")
}

func TestRespondEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondJSON(c, http.StatusOK, "ok", gin.H{"a": 1})
	assert.JSONEq(t, `{"status":true,"message":"ok","data":{"a":1}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	RespondError(c, http.StatusBadRequest, assert.AnError)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":false`)
}

func TestRespondFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondFile(c, "application/pdf", "receipt-ABC.pdf", []byte("%PDF-1.3"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="receipt-ABC.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", w.Body.String())
}
