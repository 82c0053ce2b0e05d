package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scheme-assistant-platform/internal/locale"
	"scheme-assistant-platform/internal/telemetry"
	"scheme-assistant-platform/models"
	"scheme-assistant-platform/services"
	"scheme-assistant-platform/utils"
)

func SetupAuthRoutes(router *gin.Engine, otpService *services.OTPService, normalizer *locale.Normalizer, metrics *telemetry.Metrics) {
	auth := router.Group("/auth")

	// OTP issuance endpoint
	auth.POST("/request-otp", func(c *gin.Context) {
		var req models.RequestOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Phone must be a 10-15 digit number", gin.H{"error": err.Error()})
			return
		}

		lang := normalizer.Normalize(c.Query("lang"))

		issue, err := otpService.Request(c.Request.Context(), req.Phone)
		if err != nil {
			var throttled *services.ThrottledError
			if errors.As(err, &throttled) {
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error_code":       "throttled",
					"message":          locale.Message("otp_throttled", lang),
					"cooldown_seconds": throttled.CooldownSeconds,
				})
				return
			}
			utils.RespondWithInternalError(c, "Failed to issue OTP", nil)
			return
		}

		metrics.RecordOTPIssued(c.Request.Context())

		// The code rides along in-band for demonstration only.
		c.JSON(http.StatusOK, gin.H{
			"msg":                locale.Message("otp_sent", lang),
			"cooldown_seconds":   issue.CooldownSeconds,
			"expires_in_seconds": issue.ExpiresInSeconds,
			"otp":                issue.OTP,
		})
	})

	// OTP verification endpoint
	auth.POST("/verify-otp", func(c *gin.Context) {
		var req models.VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Phone and a 6-digit OTP are required", gin.H{"error": err.Error()})
			return
		}

		lang := normalizer.Normalize(c.Query("lang"))

		token, err := otpService.Verify(c.Request.Context(), req.Phone, req.OTP)
		switch {
		case errors.Is(err, services.ErrOTPNotFound):
			utils.RespondWithNotFound(c, "otp_not_found", locale.Message("otp_not_found", lang))
			return
		case errors.Is(err, services.ErrOTPExpired):
			utils.RespondWithGone(c, "otp_expired", locale.Message("otp_expired", lang))
			return
		case errors.Is(err, services.ErrOTPInvalid):
			utils.RespondWithUnauthorized(c, "otp_invalid", locale.Message("otp_invalid", lang))
			return
		case err != nil:
			utils.RespondWithInternalError(c, "Failed to verify OTP", nil)
			return
		}

		metrics.RecordOTPVerified(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"msg":   locale.Message("otp_verified", lang),
			"token": token,
		})
	})
}
