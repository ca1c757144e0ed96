// Package validator implements the request-shape and balance checks the
// Processor runs before attempting a payment, per spec.md §4.4. The
// regex-per-field style is adapted from salon-shared/validation's
// phone/otp validators.
package validator

import (
	"regexp"

	"payment-orchestrator/internal/apperrors"
	"payment-orchestrator/internal/collaborators/balance"
	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

// accountPattern validates a destination account number's shape per
// settlement currency, mirroring how payment networks constrain account
// identifiers by region.
var accountPattern = map[money.Currency]*regexp.Regexp{
	money.USD: regexp.MustCompile(`^[0-9]{10}$`),
	money.EUR: regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,32}$`),
	money.RUB: regexp.MustCompile(`^[0-9]{20}$`),
}

// Validator checks a PaymentRequest for well-formedness before the
// Processor attempts it.
type Validator struct {
	balances balance.Service
}

// New builds a Validator backed by balances for sufficiency checks.
func New(balances balance.Service) *Validator {
	return &Validator{balances: balances}
}

// Validate returns apperrors.ValidationErrors naming every field that
// failed, or nil if the request is acceptable. All checks run even after
// an earlier one fails, so a caller sees every problem at once.
func (v *Validator) Validate(request model.PaymentRequest) error {
	var errs apperrors.ValidationErrors

	if !request.Currency.Valid() {
		errs = append(errs, apperrors.ValidationError{
			Field:   "currency",
			Message: "unsupported currency",
		})
	}

	if request.Amount.Sign() <= 0 {
		errs = append(errs, apperrors.ValidationError{
			Field:   "amount",
			Message: "must be positive",
		})
	} else if max, ok := money.MaxPerCurrency[request.Currency]; ok && request.Amount.GreaterThan(max) {
		errs = append(errs, apperrors.ValidationError{
			Field:   "amount",
			Message: "exceeds maximum for currency",
		})
	}

	if pattern, ok := accountPattern[request.Currency]; ok {
		if !pattern.MatchString(request.DestinationAccount) {
			errs = append(errs, apperrors.ValidationError{
				Field:   "destination_account",
				Message: "does not match the expected format for currency",
			})
		}
	}

	if request.SourceAccount == "" {
		errs = append(errs, apperrors.ValidationError{
			Field:   "source_account",
			Message: "is required",
		})
	}

	if request.SourceAccount != "" && request.Amount.Sign() > 0 && v.balances != nil {
		if !v.balances.HasSufficientBalance(request.SourceAccount, request.Amount, request.Currency) {
			errs = append(errs, apperrors.ValidationError{
				Field:   "source_account",
				Message: "insufficient balance",
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
