package employee

import "context"

// Repository は社員永続化の抽象です。
// Create と Update は nil を返しても構いません。その場合は渡したレコードがそのまま保存されたものとみなします。
type Repository interface {
	List(ctx context.Context) ([]*Employee, error)
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id string) error
}
