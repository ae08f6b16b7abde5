package dto

// EstimateRequest payload for POST /api/estimate-time on the estimation
// service. is_admin selects the response unit (1 → hours, otherwise days).
type EstimateRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	IsAdmin  int    `json:"is_admin"`
}

// EstimateHoursResponse is returned to admin callers.
type EstimateHoursResponse struct {
	EstimatedHours int `json:"estimatedHours"`
}

// EstimateDaysResponse is returned to non-admin callers.
type EstimateDaysResponse struct {
	EstimatedDays int `json:"estimatedDays"`
}
