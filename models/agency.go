package models

import "time"

// Agency is a branch of a bank. Every agency belongs to exactly one bank
// and is always addressed through its parent's ID.
type Agency struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	BankID    int64     `json:"bank_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Agency model.
func (a Agency) TableName() string {
	return "agencies"
}

// AgencyInput carries the writable fields of an agency. The parent bank is
// taken from the request path, never from the body.
type AgencyInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ToAgency converts the input into an Agency owned by bankID.
func (in AgencyInput) ToAgency(bankID int64) Agency {
	return Agency{Code: in.Code, Name: in.Name, BankID: bankID}
}
