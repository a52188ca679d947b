package employee

import "context"

// Severity は利用者へ表示するメッセージの重要度です。
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// 画面へ通知する定型メッセージです。
const (
	MessageIncompleteForm = "Vui lòng điền đầy đủ thông tin!"
	MessageDeleteGuarded  = "Không thể xóa nhân viên đã ký hợp đồng!"
	MessageSaved          = "Đã lưu nhân viên"
	MessageDeleted        = "Đã xóa nhân viên"
)

// 入力フォームのフィールド単位のメッセージです。
const (
	MessageNameRequired       = "Nhập họ tên!"
	MessageNameTooLong        = "Tối đa 50 ký tự!"
	MessagePositionRequired   = "Chọn chức vụ!"
	MessageDepartmentRequired = "Chọn phòng ban!"
	MessageSalaryRequired     = "Nhập lương!"
	MessageStatusRequired     = "Chọn trạng thái!"
)

// Confirmer は削除前の確認を依頼し、その結果を受け取ります。
// Confirm の中から Directory を呼び出しても構いません。
type Confirmer interface {
	Confirm(ctx context.Context, target *Employee) (bool, error)
}

// ConfirmFunc は関数を Confirmer として扱うためのアダプタです。
type ConfirmFunc func(ctx context.Context, target *Employee) (bool, error)

// Confirm は f を呼び出します。
func (f ConfirmFunc) Confirm(ctx context.Context, target *Employee) (bool, error) {
	return f(ctx, target)
}

// AlwaysConfirm は常に削除を承認する Confirmer です。
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, *Employee) (bool, error) {
	return true, nil
})

// Notifier は利用者へのメッセージ表示を担います。
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string)
}

// NotifierFunc は関数を Notifier として扱うためのアダプタです。
type NotifierFunc func(ctx context.Context, severity Severity, message string)

// Notify は f を呼び出します。
func (f NotifierFunc) Notify(ctx context.Context, severity Severity, message string) {
	f(ctx, severity, message)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Severity, string) {}
