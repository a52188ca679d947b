package employee

import "github.com/shopspring/decimal"

// Position は社員の役職を表します。
type Position string

const (
	PositionStaff    Position = "Nhân viên"
	PositionManager  Position = "Trưởng phòng"
	PositionDirector Position = "Giám đốc"
)

// Department は所属部署を表します。
type Department string

const (
	DepartmentAccounting Department = "Kế toán"
	DepartmentHR         Department = "Nhân sự"
	DepartmentIT         Department = "IT"
	DepartmentSales      Department = "Kinh doanh"
)

// Status は雇用契約の状態を表します。
type Status string

const (
	// StatusContracted は契約締結済みで、削除できない状態です。
	StatusContracted Status = "Đã ký hợp đồng"
	StatusProbation  Status = "Thử việc"
)

// Employee は社員エンティティです。
type Employee struct {
	ID         string
	Name       string
	Position   Position
	Department Department
	Salary     decimal.Decimal
	Status     Status
}

// Deletable は削除ガードに掛からないかどうかを返します。
func (e *Employee) Deletable() bool {
	return e != nil && e.Status != StatusContracted
}

// Positions は選択可能な役職を表示順で返します。
func Positions() []Position {
	return []Position{PositionStaff, PositionManager, PositionDirector}
}

// Departments は選択可能な部署を表示順で返します。
func Departments() []Department {
	return []Department{DepartmentAccounting, DepartmentHR, DepartmentIT, DepartmentSales}
}

// Statuses は選択可能な契約状態を表示順で返します。
func Statuses() []Status {
	return []Status{StatusContracted, StatusProbation}
}

func cloneEmployee(e *Employee) *Employee {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

func cloneEmployees(list []*Employee) []*Employee {
	out := make([]*Employee, 0, len(list))
	for _, e := range list {
		out = append(out, cloneEmployee(e))
	}
	return out
}
