package util

import (
	"errors"
	"fmt"
)

// 错误类别，控制器据此映射 HTTP 状态码
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

var (
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrEmailRegistered    = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrSchoolNotFound   = fmt.Errorf("%w: school", ErrNotFound)
	ErrSchoolCodeExists = fmt.Errorf("%w: school code already exists", ErrConflict)
	ErrQuestionNotFound = fmt.Errorf("%w: question", ErrNotFound)

	ErrAttemptNotFound = fmt.Errorf("%w: attempt", ErrNotFound)
	ErrAttemptExists   = fmt.Errorf("%w: attempt already submitted for this day", ErrConflict)

	ErrVoucherNotFound        = fmt.Errorf("%w: voucher", ErrNotFound)
	ErrVoucherIssued          = fmt.Errorf("%w: voucher already issued for attempt", ErrConflict)
	ErrVoucherAlreadyRedeemed = fmt.Errorf("%w: voucher already redeemed", ErrConflict)
	ErrVoucherExpired         = fmt.Errorf("%w: voucher expired", ErrConflict)
	ErrProductNotFound        = fmt.Errorf("%w: product", ErrNotFound)
	ErrProductUnavailable     = fmt.Errorf("%w: product out of stock or disabled", ErrConflict)
)

// Validationf 构造校验错误
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
