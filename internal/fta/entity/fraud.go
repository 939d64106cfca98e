package entity

import "github.com/shopspring/decimal"

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// AccountMovement is the total an account sent (OUT) or received (IN).
type AccountMovement struct {
	Bank      string
	Agency    string
	Account   string
	Amount    decimal.Decimal
	Direction Direction
}

// AgencyMovement is the total an agency sent (OUT) or received (IN).
type AgencyMovement struct {
	Bank      string
	Agency    string
	Amount    decimal.Decimal
	Direction Direction
}

// Frauds groups what a detector flagged over a transaction list.
type Frauds struct {
	Transactions []Transaction
	Accounts     []AccountMovement
	Agencies     []AgencyMovement
}
