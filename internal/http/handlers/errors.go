package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// errorStatus maps domain sentinels to HTTP statuses and client messages
var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{domain.ErrEmailNotVerified, http.StatusForbidden, "Please verify your email before logging in"},
	{domain.ErrUserAlreadyExists, http.StatusConflict, "An account with this email already exists"},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrOTPInvalid, http.StatusBadRequest, "Invalid OTP"},
	{domain.ErrOTPNotFound, http.StatusBadRequest, "OTP expired or not found"},
	{domain.ErrOTPExpired, http.StatusBadRequest, "OTP expired or not found"},
	{domain.ErrOTPMaxAttempts, http.StatusTooManyRequests, "Too many attempts, request a new OTP"},
	{domain.ErrOTPResendLimit, http.StatusTooManyRequests, ""},
	{domain.ErrPropertyNotFound, http.StatusNotFound, "Property not found"},
	{domain.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{domain.ErrNoRoomsAvailable, http.StatusConflict, "No rooms available"},
	{domain.ErrDuplicateBooking, http.StatusConflict, "You already have a booking for this property"},
	{domain.ErrBookingNotPending, http.StatusConflict, "Booking has already been decided"},
	{domain.ErrInvalidTransition, http.StatusBadRequest, "Status must be APPROVED or REJECTED"},
	{domain.ErrNotPropertyOwner, http.StatusForbidden, "Access denied"},
	{domain.ErrInvalidInput, http.StatusBadRequest, ""},
}

// respondError writes the error body the client reads: message, mirrored in error
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			msg := e.message
			if msg == "" {
				msg = domain.MessageOf(err, err.Error())
			}
			writeError(c, e.status, msg)
			return
		}
	}
	log.Printf("HTTP_INTERNAL_ERROR: method=%s path=%s error=%v", c.Request.Method, c.Request.URL.Path, err)
	writeError(c, http.StatusInternalServerError, "Internal server error")
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg, "error": msg})
}

func badRequest(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, err.Error())
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
