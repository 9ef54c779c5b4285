package models

import "time"

// HealthProfile is the registry record a worker keeps about themselves
type HealthProfile struct {
	UserID          string    `json:"user_id" db:"user_id"`
	Phone           string    `json:"phone" db:"phone"`
	FullName        string    `json:"full_name" db:"full_name"`
	Age             int       `json:"age" db:"age"`
	Gender          string    `json:"gender" db:"gender"`
	Address         string    `json:"address" db:"address"`
	NativeState     string    `json:"native_state" db:"native_state"`
	BloodGroup      string    `json:"blood_group" db:"blood_group"`
	MaritalStatus   string    `json:"marital_status" db:"marital_status"`
	Language        string    `json:"language" db:"language"`
	FinancialStatus string    `json:"financial_status" db:"financial_status"`
	Allergies       string    `json:"allergies" db:"allergies"`
	Conditions      string    `json:"conditions" db:"conditions"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// WorkerListResult is a page of profiles
type WorkerListResult struct {
	Workers []*HealthProfile `json:"workers"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}
