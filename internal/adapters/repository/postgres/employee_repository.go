package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-employee-directory/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-employee-directory/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	employeeUniqueViolationCode = "23505"
	employeeCheckViolationCode  = "23514"
	employeeNumericOverflowCode = "22003"
)

const (
	listEmployeesQuery = `
        SELECT id, name, position, department, salary, status
          FROM employees
         ORDER BY seq ASC
    `

	insertEmployeeQuery = `
        INSERT INTO employees (id, name, position, department, salary, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, name, position, department, salary, status
    `

	updateEmployeeQuery = `
        UPDATE employees
           SET name = $1,
               position = $2,
               department = $3,
               salary = $4,
               status = $5,
               updated_at = NOW()
         WHERE id = $6
        RETURNING id, name, position, department, salary, status
    `

	deleteEmployeeQuery = `DELETE FROM employees WHERE id = $1`
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

var _ employee.Repository = (*EmployeeRepository)(nil)

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// List は全社員を登録順に取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listEmployeesQuery)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, insertEmployeeQuery,
		e.ID,
		e.Name,
		string(e.Position),
		string(e.Department),
		e.Salary,
		string(e.Status),
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Update は社員情報を ID をキーに更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, updateEmployeeQuery,
		e.Name,
		string(e.Position),
		string(e.Department),
		e.Salary,
		string(e.Status),
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// Delete は社員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, deleteEmployeeQuery, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id         string
		name       string
		position   string
		department string
		salary     decimal.Decimal
		status     string
	)

	if err := row.Scan(&id, &name, &position, &department, &salary, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &employee.Employee{
		ID:         id,
		Name:       name,
		Position:   employee.Position(position),
		Department: employee.Department(department),
		Salary:     salary,
		Status:     employee.Status(status),
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case employeeUniqueViolationCode:
			return employee.ErrEmployeeAlreadyExists
		case employeeNumericOverflowCode:
			return employee.ErrInvalidSalary
		case employeeCheckViolationCode:
			switch pgErr.ConstraintName {
			case "employees_salary_check":
				return employee.ErrInvalidSalary
			case "employees_status_check":
				return employee.ErrInvalidStatus
			default:
				return employee.ErrValidation
			}
		}
	}

	return err
}
