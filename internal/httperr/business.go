package httperr

import "errors"

// BusinessError is a domain-rule violation identified by a stable code.
// Use cases return these; handlers translate codes into HTTP statuses.
// Anything that is not a BusinessError is treated as an unexpected
// storage failure and never leaks to the caller verbatim.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code, or "" when err is not a BusinessError.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
