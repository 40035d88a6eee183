package entities

// ActionOutcome distinguishes a write that happened from one that was skipped
// because an equivalent record already existed.
type ActionOutcome string

const (
	OutcomeCreated   ActionOutcome = "created"
	OutcomeDuplicate ActionOutcome = "duplicate"
)

// ApplicationResult is returned by the apply operation.
type ApplicationResult struct {
	Outcome     ActionOutcome
	Application *Application
}

// UserResult is returned by the first-login upsert.
type UserResult struct {
	Outcome ActionOutcome
	User    *User
}

// PaymentResult is returned by the hire saga.
type PaymentResult struct {
	Outcome ActionOutcome
	Payment *Payment
}

// AdminStats aggregates collection sizes and revenue.
type AdminStats struct {
	TotalUsers        int64   `json:"totalUsers"`
	TotalTuitions     int64   `json:"totalTuitions"`
	TotalApplications int64   `json:"totalApplications"`
	TotalPayments     int64   `json:"totalPayments"`
	TotalRevenue      float64 `json:"totalRevenue"`
}
