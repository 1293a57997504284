package models

import "time"

// Bank is a financial institution registered in the system.
type Bank struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Bank model.
func (b Bank) TableName() string {
	return "banks"
}

// BankInput carries the writable fields of a bank.
type BankInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ToBank converts the input into a Bank with no server-assigned fields set.
func (in BankInput) ToBank() Bank {
	return Bank{Code: in.Code, Name: in.Name}
}
