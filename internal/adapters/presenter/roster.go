// Package presenter は社員名簿を一覧表示向けの形に整えます。
package presenter

import (
	"slices"
	"strings"

	"github.com/ogurasousui/codex-employee-directory/internal/core/employee"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Row は一覧表の 1 行です。
type Row struct {
	ID            string
	Name          string
	Position      string
	Department    string
	Salary        string
	SalaryDisplay string
	Status        string
	Deletable     bool
}

// Options は入力フォームの選択肢です。
type Options struct {
	Positions   []string
	Departments []string
	Statuses    []string
}

// FormOptions は役職・部署・契約状態の選択肢を表示順で返します。
func FormOptions() Options {
	return Options{
		Positions:   toStrings(employee.Positions()),
		Departments: toStrings(employee.Departments()),
		Statuses:    toStrings(employee.Statuses()),
	}
}

// SortBySalaryDesc は給与の降順に並べ替えたコピーを返します。同額の場合は元の順序を保ちます。
func SortBySalaryDesc(list []*employee.Employee) []*employee.Employee {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b *employee.Employee) int {
		return b.Salary.Cmp(a.Salary)
	})
	return sorted
}

// FormatSalary は給与を "$1,234.5" の形式 (en-US、小数 3 桁まで) で返します。
// 整数部は桁数に上限なく 3 桁区切りで出力します。
func FormatSalary(v decimal.Decimal) string {
	rounded := v.Round(3)
	abs := rounded.Abs()
	whole := abs.Truncate(0)

	var b strings.Builder
	b.WriteString("$")
	if rounded.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString(groupThousands(whole.String()))
	if frac := abs.Sub(whole); !frac.IsZero() {
		b.WriteString(strings.TrimPrefix(frac.String(), "0"))
	}
	return b.String()
}

// groupThousands は数字列を en-US の桁区切り記号で 3 桁ごとに区切ります。
func groupThousands(digits string) string {
	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(enUSGroupSeparator)
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

var enUSGroupSeparator = groupSeparator()

// groupSeparator は en-US ロケールの桁区切り記号を返します。
func groupSeparator() string {
	sample := message.NewPrinter(language.AmericanEnglish).Sprintf("%d", 1000)
	return strings.TrimSuffix(strings.TrimPrefix(sample, "1"), "000")
}

// Rows は社員を表示用の行に変換します。
func Rows(list []*employee.Employee) []Row {
	rows := make([]Row, 0, len(list))
	for _, e := range list {
		if e == nil {
			continue
		}
		rows = append(rows, Row{
			ID:            e.ID,
			Name:          e.Name,
			Position:      string(e.Position),
			Department:    string(e.Department),
			Salary:        e.Salary.String(),
			SalaryDisplay: FormatSalary(e.Salary),
			Status:        string(e.Status),
			Deletable:     e.Deletable(),
		})
	}
	return rows
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
