package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faridcreations/booking-api/internal/api/metrics"
	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

type SubscriptionHandler struct {
	service ports.SubscriptionService
}

func NewSubscriptionHandler(service ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type subscribeRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// Subscribe handles POST /api/v1/subscription/subscribe.
//
// @Summary      Subscribe to the newsletter
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Param        body  body      subscribeRequest  true  "Subscriber email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /subscription/subscribe [post]
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Subscribe(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrNotificationFailure) {
			metrics.NotificationFailuresTotal.WithLabelValues(domain.TemplateNewsletterWelcome).Inc()
		}
		return err
	}
	metrics.SubscriptionsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "subscribed"})
}
