package domain

import "errors"

var (
	// Allocation and construction errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidAllocation = errors.New("payment methods exceed transaction total")
	ErrInvalidSchedule   = errors.New("invalid installment schedule")

	// Trade-in credit errors
	ErrInsufficientCredit = errors.New("consumption exceeds remaining trade-in credit")
	ErrCreditUnavailable  = errors.New("trade-in credit is not active")

	// Running account errors
	ErrAmountMismatch = errors.New("payment total does not match selected pending total")

	// Cross-entity errors
	ErrUnknownReference        = errors.New("referenced record does not exist")
	ErrIllegalStateTransition  = errors.New("operation not allowed in current status")
	ErrConcurrentModification  = errors.New("record was modified concurrently")
	ErrInvalidCounterpartyName = errors.New("invalid counterparty name")

	// Not-found errors
	ErrSaleNotFound       = errors.New("sale not found")
	ErrDebtNotFound       = errors.New("debt not found")
	ErrInstrumentNotFound = errors.New("instrument not found")
	ErrPermutaNotFound    = errors.New("permuta not found")
	ErrAcertoNotFound     = errors.New("acerto not found")
	ErrTaxNotFound        = errors.New("tax not found")
	ErrCommissionNotFound = errors.New("commission not found")
)
