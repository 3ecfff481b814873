package model

import "strings"

// Plan is the subscription tier a user pays for.
type Plan string

const (
	PlanMonth Plan = "month"
	PlanYear  Plan = "year"
)

// ParsePlan accepts "month" or "year" in any case.
func ParsePlan(s string) (Plan, bool) {
	switch Plan(strings.ToLower(strings.TrimSpace(s))) {
	case PlanMonth:
		return PlanMonth, true
	case PlanYear:
		return PlanYear, true
	}
	return "", false
}

// ActivationRecord is the per-user activation state. At most one record
// exists per sender identifier; a new payment confirmation overwrites the
// previous record (last write wins).
type ActivationRecord struct {
	Code string `json:"code"`
	Plan Plan   `json:"plan"`
}
