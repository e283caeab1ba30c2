package client

import (
	"fmt"
	"strings"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// Endpoint paths. Templated paths carry a single ":id" placeholder that must
// be substituted exactly once before a request goes out.
const (
	pathLogin   = "/auth/email/login"
	pathSignup  = "/auth/email/register"
	pathRefresh = "/auth/refresh"

	pathProfile       = "/user/profile"
	pathProfileCreate = "/profile/create"

	pathClinics      = "/clinics"
	pathClinicDetail = "/clinics/:id"
	pathClinicSearch = "/clinics/search"

	pathBookings      = "/bookings"
	pathBookingDetail = "/bookings/:id"
	pathBookingCancel = "/bookings/:id/cancel"

	pathChat        = "/chat"
	pathChatHistory = "/chat/history"
)

const idPlaceholder = ":id"

// resolvePath substitutes the ":id" placeholder. An empty id, or a template
// without a placeholder, is a caller error reported as a ValidationError so
// it never reaches the network.
func resolvePath(template, id string) (string, error) {
	if id == "" {
		return "", mediseek.NewValidationError(map[string]string{"id": "is required"})
	}

	if !strings.Contains(template, idPlaceholder) {
		return "", fmt.Errorf("endpoint %q has no %s placeholder", template, idPlaceholder)
	}

	return strings.Replace(template, idPlaceholder, id, 1), nil
}
