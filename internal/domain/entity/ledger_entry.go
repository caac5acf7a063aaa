package entity

import (
	"time"
)

const (
	LedgerTypeCredit = "credit"
	LedgerTypeDebit  = "debit"
)

// LedgerEntry is an append-only record of a credit-affecting event. It is
// never read back to compute balances; the balance lives on the user record.
type LedgerEntry struct {
	ID          string    `json:"id" firestore:"id"`
	UserID      string    `json:"user_id" firestore:"userId"`
	Amount      int       `json:"amount" firestore:"amount"`
	Type        string    `json:"type" firestore:"type"`
	Description string    `json:"description" firestore:"description"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
