package employee

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は社員名簿の公開インターフェースです。
type UseCase interface {
	Employees() []*Employee
	Get(id string) (*Employee, error)
	FilteredView(q ViewQuery) []*Employee
	Save(ctx context.Context, in SaveInput, editingID string) (*Employee, error)
	Delete(ctx context.Context, id string, confirm Confirmer) (bool, error)
}

// Directory はメモリ上の社員名簿を保持し、変更を Repository へ反映します。
// 永続化に成功した変更だけがメモリ上の名簿に適用されます。
type Directory struct {
	repo     Repository
	tx       TransactionManager
	notifier Notifier

	mu        sync.Mutex
	employees []*Employee
	// issued はこのセッションで発行した最大の連番です。
	issued int
}

var _ UseCase = (*Directory)(nil)

// NewDirectory は Directory を生成します。tx と notifier は nil でも構いません。
func NewDirectory(repo Repository, tx TransactionManager, notifier Notifier) *Directory {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Directory{repo: repo, tx: tx, notifier: notifier}
}

// Load は Repository の現在の内容でメモリ上の名簿を置き換えます。
// 失敗した場合は名簿を変更せずにエラーを返します。
func (d *Directory) Load(ctx context.Context) error {
	var loaded []*Employee
	if err := d.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		list, err := d.repo.List(txCtx)
		if err != nil {
			return err
		}
		loaded = list
		return nil
	}); err != nil {
		return fmt.Errorf("employee: load: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.employees = make([]*Employee, 0, len(loaded))
	for _, e := range loaded {
		if e != nil {
			d.employees = append(d.employees, cloneEmployee(e))
		}
	}

	zerolog.Ctx(ctx).Info().Int("count", len(d.employees)).Msg("employee directory loaded")
	return nil
}

// Employees は名簿全体のコピーを挿入順で返します。
func (d *Directory) Employees() []*Employee {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneEmployees(d.employees)
}

// Get は ID で社員を取得します。
func (d *Directory) Get(id string) (*Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	return cloneEmployee(d.employees[idx]), nil
}

// FilteredView は呼び出しの度に名簿全体から q に一致する社員を挿入順で返します。
func (d *Directory) FilteredView(q ViewQuery) []*Employee {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneEmployees(slices.Collect(Filter(d.employees, q)))
}

// Save は editingID が空なら新規作成、そうでなければ該当社員の ID 以外の項目を置き換えます。
func (d *Directory) Save(ctx context.Context, in SaveInput, editingID string) (*Employee, error) {
	in = in.normalized()
	if err := Validate(in); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("employee input rejected")
		var verr *ValidationError
		if errors.As(err, &verr) && verr.Message != "" {
			d.notifier.Notify(ctx, SeverityError, verr.Message)
		}
		d.notifier.Notify(ctx, SeverityError, MessageIncompleteForm)
		return nil, err
	}

	editingID = strings.TrimSpace(editingID)
	saved, err := d.save(ctx, in, editingID)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("employee_id", saved.ID).Bool("created", editingID == "").Msg("employee saved")
	d.notifier.Notify(ctx, SeverityInfo, MessageSaved+" "+saved.ID)
	return saved, nil
}

func (d *Directory) save(ctx context.Context, in SaveInput, editingID string) (*Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if editingID != "" {
		return d.update(ctx, editingID, in)
	}
	return d.create(ctx, in)
}

func (d *Directory) create(ctx context.Context, in SaveInput) (*Employee, error) {
	seq := d.nextSequence()
	next := in.toEmployee(GenerateID(seq))

	stored, err := d.persist(ctx, next, d.repo.Create)
	if err != nil {
		return nil, fmt.Errorf("employee: create %s: %w", next.ID, err)
	}

	d.employees = append(d.employees, stored)
	d.issued = seq + 1
	return cloneEmployee(stored), nil
}

func (d *Directory) update(ctx context.Context, id string, in SaveInput) (*Employee, error) {
	idx := d.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}

	stored, err := d.persist(ctx, in.toEmployee(id), d.repo.Update)
	if err != nil {
		return nil, fmt.Errorf("employee: update %s: %w", id, err)
	}

	d.employees[idx] = stored
	return cloneEmployee(stored), nil
}

func (d *Directory) persist(ctx context.Context, e *Employee, op func(context.Context, *Employee) (*Employee, error)) (*Employee, error) {
	var result *Employee
	if err := d.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		out, err := op(txCtx, cloneEmployee(e))
		if err != nil {
			return err
		}
		result = out
		return nil
	}); err != nil {
		return nil, err
	}

	if result == nil {
		return cloneEmployee(e), nil
	}
	stored := cloneEmployee(result)
	stored.ID = e.ID
	return stored, nil
}

// Delete は社員を削除します。
// 存在しない ID、または confirm が承認しなかった場合は何もせず false を返します。
// 契約済みの社員は confirm を呼ばずに *DeleteGuardError を返します。
func (d *Directory) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	logger := zerolog.Ctx(ctx)

	target, err := d.deletable(id)
	if err != nil {
		d.refuse(ctx, err)
		return false, err
	}
	if target == nil {
		logger.Debug().Str("employee_id", id).Msg("delete target not found")
		return false, nil
	}

	if confirm == nil {
		return false, nil
	}
	ok, err := confirm.Confirm(ctx, target)
	if err != nil {
		return false, fmt.Errorf("employee: confirm delete %s: %w", id, err)
	}
	if !ok {
		logger.Debug().Str("employee_id", id).Msg("delete cancelled")
		return false, nil
	}

	removed, err := d.remove(ctx, id)
	if err != nil {
		d.refuse(ctx, err)
		return false, err
	}
	if removed {
		logger.Info().Str("employee_id", id).Msg("employee deleted")
		d.notifier.Notify(ctx, SeverityInfo, MessageDeleted+" "+id)
	}
	return removed, nil
}

func (d *Directory) deletable(id string) (*Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		return nil, nil
	}
	e := d.employees[idx]
	if !e.Deletable() {
		return nil, &DeleteGuardError{ID: e.ID, Status: e.Status}
	}
	return cloneEmployee(e), nil
}

// remove は確認待ちの間に名簿が変わっている可能性があるため、対象を引き直してから削除します。
func (d *Directory) remove(ctx context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	e := d.employees[idx]
	if !e.Deletable() {
		return false, &DeleteGuardError{ID: e.ID, Status: e.Status}
	}

	if err := d.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return d.repo.Delete(txCtx, id)
	}); err != nil {
		return false, fmt.Errorf("employee: delete %s: %w", id, err)
	}

	d.employees = slices.Delete(d.employees, idx, idx+1)
	return true, nil
}

func (d *Directory) refuse(ctx context.Context, err error) {
	var guardErr *DeleteGuardError
	if !errors.As(err, &guardErr) {
		return
	}
	zerolog.Ctx(ctx).Warn().Str("employee_id", guardErr.ID).Msg("delete refused for contracted employee")
	d.notifier.Notify(ctx, SeverityError, MessageDeleteGuarded)
}

// nextSequence は発行済みの ID と衝突しない連番の基点を返します。
// 削除が一度も無ければ名簿の件数と一致します。
func (d *Directory) nextSequence() int {
	seq := max(len(d.employees), d.issued)
	for _, e := range d.employees {
		if n, ok := idSequence(e.ID); ok && n > seq {
			seq = n
		}
	}
	return seq
}

func (d *Directory) indexOf(id string) int {
	return slices.IndexFunc(d.employees, func(e *Employee) bool {
		return e.ID == id
	})
}

func (in SaveInput) toEmployee(id string) *Employee {
	e := &Employee{
		ID:         id,
		Name:       in.Name,
		Position:   in.Position,
		Department: in.Department,
		Status:     in.Status,
	}
	if in.Salary != nil {
		e.Salary = *in.Salary
	}
	return e
}
