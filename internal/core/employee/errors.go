package employee

import (
	"errors"
	"fmt"
)

var (
	ErrValidation            = errors.New("employee: validation failed")
	ErrInvalidID             = errors.New("employee: invalid id")
	ErrInvalidName           = errors.New("employee: invalid name")
	ErrNameTooLong           = errors.New("employee: name too long")
	ErrInvalidPosition       = errors.New("employee: invalid position")
	ErrInvalidDepartment     = errors.New("employee: invalid department")
	ErrInvalidSalary         = errors.New("employee: invalid salary")
	ErrInvalidStatus         = errors.New("employee: invalid status")
	ErrEmployeeNotFound      = errors.New("employee: not found")
	ErrEmployeeAlreadyExists = errors.New("employee: id already exists")
	ErrDeleteGuarded         = errors.New("employee: contracted employee cannot be deleted")
)

// ValidationError は保存入力の最初に違反したフィールドを表します。
type ValidationError struct {
	Field string
	Err   error

	// Message はフィールドに対応する利用者向けの文言です。
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap により errors.Is で ErrValidation とフィールド個別のエラーの両方に一致します。
func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// DeleteGuardError は契約済み社員の削除が拒否されたことを表します。
type DeleteGuardError struct {
	ID     string
	Status Status
}

func (e *DeleteGuardError) Error() string {
	return fmt.Sprintf("%v: %s (%s)", ErrDeleteGuarded, e.ID, e.Status)
}

func (e *DeleteGuardError) Unwrap() error {
	return ErrDeleteGuarded
}
