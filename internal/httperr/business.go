package httperr

import "errors"

// Business error codes shared between usecases and handlers.
const (
	CodeValidation           = "validation_error"
	CodeNotFound             = "not_found"
	CodeGatewayError         = "gateway_error"
	CodeAmountMismatch       = "amount_mismatch"
	CodePaymentNotSuccessful = "payment_not_successful"
	CodeInvalidSignature     = "invalid_signature"
	CodeInvalidTransition    = "invalid_transition"
)

type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessDetail returns the detail message of a business error, or the
// plain error text for anything else.
func BusinessDetail(err error) string {
	var be BusinessError
	if errors.As(err, &be) && be.Detail != "" {
		return be.Detail
	}
	return err.Error()
}
