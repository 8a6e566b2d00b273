package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// User roles
const (
	RoleAdmin      = "admin"
	RoleWorker     = "worker"
	RoleSupervisor = "supervisor"
)

// Project statuses
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusOnHold     = "on_hold"
)

// Risk levels
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleWorker || role == RoleSupervisor
}

func ValidStatus(status string) bool {
	return status == StatusPlanning || status == StatusInProgress ||
		status == StatusCompleted || status == StatusOnHold
}

func ValidRiskLevel(level string) bool {
	return level == RiskLow || level == RiskMedium || level == RiskHigh || level == RiskCritical
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
