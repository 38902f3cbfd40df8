package catalogapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk/internal/domain"
	"github.com/coursedesk/coursedesk/internal/webserver"
)

type orderPayload struct {
	FirstName   string               `json:"firstName"`
	LastName    string               `json:"lastName"`
	Address     string               `json:"address"`
	PhoneNumber string               `json:"phoneNumber"`
	Email       string               `json:"email"`
	Lessons     []domain.OrderLesson `json:"lessons"`
}

// validate checks presence of the six required fields. No format, duplicate
// or stock checks are made here.
func (p *orderPayload) validate() bool {
	if strings.TrimSpace(p.FirstName) == "" ||
		strings.TrimSpace(p.LastName) == "" ||
		strings.TrimSpace(p.Address) == "" ||
		strings.TrimSpace(p.PhoneNumber) == "" ||
		strings.TrimSpace(p.Email) == "" {
		return false
	}
	return len(p.Lessons) > 0
}

// registerOrderRoutes registers the order intake endpoint
func registerOrderRoutes() {
	webserver.ApiPOST("/saveOrder", saveOrder)
}

func saveOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing required fields", nil)
	}
	if !payload.validate() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing required fields", nil)
	}

	order := &domain.Order{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Address:     payload.Address,
		PhoneNumber: payload.PhoneNumber,
		Email:       payload.Email,
		Lessons:     payload.Lessons,
		CreatedAt:   time.Now(),
	}

	orderID, err := GetAppContext(c).OrderRepo().Insert(c.Request().Context(), order)
	if err != nil {
		zap.L().Error("failed to save order", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save order", nil)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"orderId": orderID,
		"order":   order,
	})
}
