package models

import "time"

// OTPRecord tracks a single live code per phone number. The record is
// destroyed on successful verification, on expiry detection, or
// replaced by a fresh issuance once the cooldown has elapsed.
type OTPRecord struct {
	Phone     string    `json:"phone"`
	OTP       string    `json:"otp"`
	SentAt    time.Time `json:"sent_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RequestOTPRequest asks for a code to be issued to a phone number.
type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required,numeric,min=10,max=15"`
}

// VerifyOTPRequest submits a code for single-use verification.
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,numeric,min=10,max=15"`
	OTP   string `json:"otp" binding:"required,numeric,len=6"`
}

// OTPIssue is returned on successful issuance. The code is returned
// in-band for demonstration; real deployments would deliver it over
// SMS instead.
type OTPIssue struct {
	OTP              string
	CooldownSeconds  int
	ExpiresInSeconds int
}
