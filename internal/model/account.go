package model

// Account is a named party in the ledger: an asset, liability, income,
// expense, or equity bucket. Accounts carry identity only; balances are
// derived by aggregating over the ledger.
type Account struct {
	ID   int
	Name string // unique
}
