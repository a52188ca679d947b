package employee

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// 保存入力のフィールド名です。ValidationError.Field に入ります。
const (
	FieldName       = "name"
	FieldPosition   = "position"
	FieldDepartment = "department"
	FieldSalary     = "salary"
	FieldStatus     = "status"
)

// MaxNameLength は氏名の最大文字数です。
const MaxNameLength = 50

// MaxSalary は給与の上限 (この値を含まない) です。小数 2 桁に丸めた値で比較します。
var MaxSalary = decimal.New(1, 12)

// SaveInput は社員の新規作成・更新時の入力です。
type SaveInput struct {
	Name       string
	Position   Position
	Department Department
	Salary     *decimal.Decimal
	Status     Status
}

// constraint はフィールド単位の宣言的な制約です。
type constraint struct {
	field       string
	required    bool
	maxLen      int
	oneOf       []string
	nonNegative bool
	below       *decimal.Decimal
	invalid     error
	tooLong     error

	// message と tooLongMessage は利用者へ表示するフィールド単位の文言です。
	message        string
	tooLongMessage string
}

type fieldValue struct {
	text    string
	present bool
	number  *decimal.Decimal
}

// saveConstraints は評価順に並んでおり、最初の違反だけが報告されます。
var saveConstraints = []constraint{
	{field: FieldName, required: true, maxLen: MaxNameLength, invalid: ErrInvalidName, tooLong: ErrNameTooLong, message: MessageNameRequired, tooLongMessage: MessageNameTooLong},
	{field: FieldPosition, required: true, oneOf: toStrings(Positions()), invalid: ErrInvalidPosition, message: MessagePositionRequired},
	{field: FieldDepartment, required: true, oneOf: toStrings(Departments()), invalid: ErrInvalidDepartment, message: MessageDepartmentRequired},
	{field: FieldSalary, required: true, nonNegative: true, below: &MaxSalary, invalid: ErrInvalidSalary, message: MessageSalaryRequired},
	{field: FieldStatus, required: true, oneOf: toStrings(Statuses()), invalid: ErrInvalidStatus, message: MessageStatusRequired},
}

// Validate は制約表に従って入力を検証し、最初に違反したフィールドを *ValidationError で返します。
func Validate(in SaveInput) error {
	for _, c := range saveConstraints {
		if err := c.check(in.lookup(c.field)); err != nil {
			msg := c.message
			if errors.Is(err, c.tooLong) && c.tooLongMessage != "" {
				msg = c.tooLongMessage
			}
			return &ValidationError{Field: c.field, Err: err, Message: msg}
		}
	}
	return nil
}

func (c constraint) check(v fieldValue) error {
	if !v.present {
		if c.required {
			return c.invalid
		}
		return nil
	}
	if c.maxLen > 0 && utf8.RuneCountInString(v.text) > c.maxLen {
		return c.tooLong
	}
	if len(c.oneOf) > 0 && !slices.Contains(c.oneOf, v.text) {
		return c.invalid
	}
	if c.nonNegative && v.number != nil && v.number.IsNegative() {
		return c.invalid
	}
	if c.below != nil && v.number != nil && v.number.Round(2).GreaterThanOrEqual(*c.below) {
		return c.invalid
	}
	return nil
}

func (in SaveInput) lookup(field string) fieldValue {
	switch field {
	case FieldName:
		return textValue(strings.TrimSpace(in.Name))
	case FieldPosition:
		return textValue(string(in.Position))
	case FieldDepartment:
		return textValue(string(in.Department))
	case FieldStatus:
		return textValue(string(in.Status))
	case FieldSalary:
		if in.Salary == nil {
			return fieldValue{}
		}
		return fieldValue{text: in.Salary.String(), present: true, number: in.Salary}
	default:
		return fieldValue{}
	}
}

func (in SaveInput) normalized() SaveInput {
	out := in
	out.Name = strings.TrimSpace(in.Name)
	if in.Salary != nil {
		salary := *in.Salary
		out.Salary = &salary
	}
	return out
}

func textValue(s string) fieldValue {
	return fieldValue{text: s, present: s != ""}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
