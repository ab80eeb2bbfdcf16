package domain

// Notification template names understood by the mailer.
const (
	TemplateBookingConfirmation = "booking_confirmation"
	TemplateNewsletterWelcome   = "newsletter_welcome"
	TemplatePasswordReset       = "password_reset"
)
