// Package memory は社員名簿をプロセス内に保持する Repository 実装です。
package memory

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/ogurasousui/codex-employee-directory/internal/core/employee"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// EmployeeRepository は登録順を保持するインメモリの社員リポジトリです。
type EmployeeRepository struct {
	mu        sync.RWMutex
	employees []employee.Employee
}

var _ employee.Repository = (*EmployeeRepository)(nil)

// NewEmployeeRepository は seed を初期データとして EmployeeRepository を生成します。
func NewEmployeeRepository(seed ...*employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{}
	for _, e := range seed {
		if e != nil {
			r.employees = append(r.employees, *e)
		}
	}
	return r
}

// List は全社員を登録順に返します。
func (r *EmployeeRepository) List(_ context.Context) ([]*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, &e)
	}
	return out, nil
}

// Create は社員を末尾に追加します。
func (r *EmployeeRepository) Create(_ context.Context, e *employee.Employee) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(e.ID) >= 0 {
		return nil, employee.ErrEmployeeAlreadyExists
	}
	r.employees = append(r.employees, *e)
	created := *e
	return &created, nil
}

// Update は ID が一致する社員を置き換えます。
func (r *EmployeeRepository) Update(_ context.Context, e *employee.Employee) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(e.ID)
	if idx < 0 {
		return nil, employee.ErrEmployeeNotFound
	}
	r.employees[idx] = *e
	updated := *e
	return &updated, nil
}

// Delete は ID が一致する社員を削除します。
func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return employee.ErrEmployeeNotFound
	}
	r.employees = slices.Delete(r.employees, idx, idx+1)
	return nil
}

func (r *EmployeeRepository) indexOf(id string) int {
	return slices.IndexFunc(r.employees, func(e employee.Employee) bool {
		return e.ID == id
	})
}

type seedFile struct {
	Employees []seedEmployee `yaml:"employees"`
}

type seedEmployee struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Position   string `yaml:"position"`
	Department string `yaml:"department"`
	Salary     string `yaml:"salary"`
	Status     string `yaml:"status"`
}

// LoadSeedFile は YAML の初期データを読み込みます。
func LoadSeedFile(path string) ([]*employee.Employee, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("memory: read seed file %s: %w", path, err)
	}
	return ParseSeed(b)
}

// ParseSeed は YAML の初期データを社員に変換します。ID の重複に加えて各フィールドを保存時と同じ制約で検証します。
func ParseSeed(b []byte) ([]*employee.Employee, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("memory: parse seed yaml: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Employees))
	out := make([]*employee.Employee, 0, len(f.Employees))
	for i, s := range f.Employees {
		if s.ID == "" {
			return nil, fmt.Errorf("memory: seed employees[%d]: %w", i, employee.ErrInvalidID)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("memory: seed employees[%d] %s: %w", i, s.ID, employee.ErrEmployeeAlreadyExists)
		}
		seen[s.ID] = struct{}{}

		salary, err := decimal.NewFromString(s.Salary)
		if err != nil {
			return nil, fmt.Errorf("memory: seed employees[%d] %s: %w", i, s.ID, employee.ErrInvalidSalary)
		}

		in := employee.SaveInput{
			Name:       strings.TrimSpace(s.Name),
			Position:   employee.Position(s.Position),
			Department: employee.Department(s.Department),
			Salary:     &salary,
			Status:     employee.Status(s.Status),
		}
		if err := employee.Validate(in); err != nil {
			return nil, fmt.Errorf("memory: seed employees[%d] %s: %w", i, s.ID, err)
		}

		out = append(out, &employee.Employee{
			ID:         s.ID,
			Name:       in.Name,
			Position:   in.Position,
			Department: in.Department,
			Salary:     salary,
			Status:     in.Status,
		})
	}
	return out, nil
}
