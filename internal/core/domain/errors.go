package domain

import "errors"

var (
	ErrInvalidDateFormat    = errors.New("invalid date format")
	ErrInvalidAddOn         = errors.New("each add-on must have a title and a time")
	ErrDuplicateBooking     = errors.New("booking already exists for this appointment")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrCategoryNotFound     = errors.New("appointment category not found")
	ErrMissingKeyField      = errors.New("booking is missing a natural key field")
	ErrSlotUnavailable      = errors.New("date is not available for this category")
	ErrImageRequired        = errors.New("category image is required")
	ErrMissingCategoryField = errors.New("category is missing a required field")
	ErrUploadsDisabled      = errors.New("image uploads are not configured")
	ErrNoResults            = errors.New("no results found")
	ErrEmailRequired        = errors.New("email is required")
	ErrNotificationFailure  = errors.New("notification could not be sent")
	ErrStoreFailure         = errors.New("store failure")
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidResetToken  = errors.New("password reset token is invalid or has expired")
)
