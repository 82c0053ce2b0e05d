package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"scheme-assistant-platform/internal/auth"
	"scheme-assistant-platform/internal/locale"
	"scheme-assistant-platform/internal/store"
	"scheme-assistant-platform/services"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	otpService := services.NewOTPService(store.NewMemoryOTPStore(), 30*time.Second, 300*time.Second, issuer)
	normalizer := locale.NewNormalizer([]string{"hi", "ta", "te", "bn", "mr", "en"}, "hi")

	router := gin.New()
	SetupAuthRoutes(router, otpService, normalizer, nil)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestOTP(t *testing.T) {
	router := newAuthRouter(t)

	w := postJSON(router, "/auth/request-otp", gin.H{"phone": "9876543210"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, locale.Message("otp_sent", "hi"), body["msg"])
	require.Equal(t, float64(30), body["cooldown_seconds"])
	require.Equal(t, float64(300), body["expires_in_seconds"])
	require.Len(t, body["otp"].(string), 6)
}

func TestRequestOTPThrottled(t *testing.T) {
	router := newAuthRouter(t)

	w := postJSON(router, "/auth/request-otp", gin.H{"phone": "9876543210"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/auth/request-otp", gin.H{"phone": "9876543210"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "throttled", body["error_code"])
	cooldown := body["cooldown_seconds"].(float64)
	require.Greater(t, cooldown, float64(0))
	require.LessOrEqual(t, cooldown, float64(30))
}

func TestRequestOTPValidation(t *testing.T) {
	router := newAuthRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{name: "missing phone", body: gin.H{}},
		{name: "non-numeric phone", body: gin.H{"phone": "98765abcde"}},
		{name: "too short", body: gin.H{"phone": "12345"}},
		{name: "too long", body: gin.H{"phone": "1234567890123456"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(router, "/auth/request-otp", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestVerifyOTPHappyPathAndSingleUse(t *testing.T) {
	router := newAuthRouter(t)

	w := postJSON(router, "/auth/request-otp", gin.H{"phone": "9876543210"})
	require.Equal(t, http.StatusOK, w.Code)
	otp := decodeBody(t, w)["otp"].(string)

	w = postJSON(router, "/auth/verify-otp", gin.H{"phone": "9876543210", "otp": otp})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, locale.Message("otp_verified", "hi"), body["msg"])
	require.NotEmpty(t, body["token"])

	// The consumed code is gone: replay reads as no OTP on record.
	w = postJSON(router, "/auth/verify-otp", gin.H{"phone": "9876543210", "otp": otp})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "otp_not_found", decodeBody(t, w)["error_code"])
}

func TestVerifyOTPWrongCodeThenRight(t *testing.T) {
	router := newAuthRouter(t)

	w := postJSON(router, "/auth/request-otp", gin.H{"phone": "9876543210"})
	otp := decodeBody(t, w)["otp"].(string)

	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}
	w = postJSON(router, "/auth/verify-otp", gin.H{"phone": "9876543210", "otp": wrong})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "otp_invalid", decodeBody(t, w)["error_code"])

	w = postJSON(router, "/auth/verify-otp", gin.H{"phone": "9876543210", "otp": otp})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyOTPUnknownPhone(t *testing.T) {
	router := newAuthRouter(t)

	w := postJSON(router, "/auth/verify-otp", gin.H{"phone": "9000000000", "otp": "123456"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyOTPValidation(t *testing.T) {
	router := newAuthRouter(t)

	for i, body := range []gin.H{
		{"phone": "9876543210"},          // missing otp
		{"otp": "123456"},                // missing phone
		{"phone": "9876543210", "otp": "12345"},   // short code
		{"phone": "9876543210", "otp": "1234567"}, // long code
	} {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			w := postJSON(router, "/auth/verify-otp", body)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRequestOTPLocalizedMessage(t *testing.T) {
	router := newAuthRouter(t)

	raw, _ := json.Marshal(gin.H{"phone": "9876543210"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/request-otp?lang=en", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, locale.Message("otp_sent", "en"), decodeBody(t, w)["msg"])
}
