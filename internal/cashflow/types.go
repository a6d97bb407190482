package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origin tags which source export a line item came from. The values match
// the labels treasury uses in the audit sheet.
type Origin string

const (
	OriginProjection Origin = "Proyeccion"
	OriginCheck      Origin = "Cheques"
	OriginTax        Origin = "Impuestos"
)

// Record is one cash-flow line item after source-specific extraction and
// name resolution. Amount and Date are always valid; rows that failed
// coercion never become Records. Company is UNKNOWN when no correlation
// entry matched, never empty.
type Record struct {
	Company      string          `json:"company"`
	Bank         string          `json:"bank"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Origin       Origin          `json:"origin"`
	Detail       string          `json:"detail,omitempty"`
	ChequeNumber string          `json:"cheque_number,omitempty"`
}

// Balance is one per-(company, bank) liquidity entry from the balances
// export: money parked in FCI funds and the bank account balance proper.
type Balance struct {
	Company     string          `json:"company"`
	Bank        string          `json:"bank"`
	FciBalance  decimal.Decimal `json:"fci_balance"`
	BankBalance decimal.Decimal `json:"bank_balance"`
}
