package handler

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ogurasousui/codex-employee-directory/internal/adapters/notify"
	"github.com/ogurasousui/codex-employee-directory/internal/adapters/presenter"
	"github.com/ogurasousui/codex-employee-directory/internal/core/employee"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// DirectoryGrpcHandler は DirectoryService の gRPC 実装です。
type DirectoryGrpcHandler struct {
	svc employee.UseCase
}

var _ DirectoryServiceServer = (*DirectoryGrpcHandler)(nil)

// NewDirectoryGrpcHandler は DirectoryGrpcHandler を生成します。
func NewDirectoryGrpcHandler(svc employee.UseCase) *DirectoryGrpcHandler {
	return &DirectoryGrpcHandler{svc: svc}
}

// ListOptions は入力フォームの選択肢を返します。
func (h *DirectoryGrpcHandler) ListOptions(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	opts := presenter.FormOptions()
	return newStruct(map[string]any{
		"positions":   stringList(opts.Positions),
		"departments": stringList(opts.Departments),
		"statuses":    stringList(opts.Statuses),
	})
}

// ListEmployees は検索条件に一致する社員を返します。
func (h *DirectoryGrpcHandler) ListEmployees(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	list := h.svc.FilteredView(employee.ViewQuery{
		SearchText: stringField(req, "search_text"),
		Position:   employee.Position(stringField(req, "position")),
		Department: employee.Department(stringField(req, "department")),
	})
	if boolField(req, "sort_by_salary") {
		list = presenter.SortBySalaryDesc(list)
	}

	rows := presenter.Rows(list)
	items := make([]any, 0, len(rows))
	for _, r := range rows {
		items = append(items, rowMap(r))
	}

	return newStruct(map[string]any{
		"employees": items,
		"total":     len(h.svc.Employees()),
	})
}

// GetEmployee は編集フォームの初期値として社員を返します。
func (h *DirectoryGrpcHandler) GetEmployee(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id := strings.TrimSpace(stringField(req, "id"))
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	found, err := h.svc.Get(id)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{
		"employee": rowMap(presenter.Rows([]*employee.Employee{found})[0]),
	})
}

// SaveEmployee は editing_id が空なら社員を作成し、そうでなければ更新します。
func (h *DirectoryGrpcHandler) SaveEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	salary, err := salaryField(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("salary: %v", err))
	}

	ctx, buf := notify.WithBuffer(ctx)
	saved, err := h.svc.Save(ctx, employee.SaveInput{
		Name:       stringField(req, "name"),
		Position:   employee.Position(stringField(req, "position")),
		Department: employee.Department(stringField(req, "department")),
		Salary:     salary,
		Status:     employee.Status(stringField(req, "status")),
	}, stringField(req, "editing_id"))
	if err != nil {
		return nil, toStatusErrorWithNotice(err, buf)
	}

	return newStruct(map[string]any{
		"employee": rowMap(presenter.Rows([]*employee.Employee{saved})[0]),
		"messages": messageList(buf.Messages()),
	})
}

// DeleteEmployee は confirmed が true の場合に社員を削除します。
func (h *DirectoryGrpcHandler) DeleteEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id := strings.TrimSpace(stringField(req, "id"))
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	confirmed := boolField(req, "confirmed")
	ctx, buf := notify.WithBuffer(ctx)
	deleted, err := h.svc.Delete(ctx, id, employee.ConfirmFunc(func(context.Context, *employee.Employee) (bool, error) {
		return confirmed, nil
	}))
	if err != nil {
		return nil, toStatusErrorWithNotice(err, buf)
	}

	return newStruct(map[string]any{
		"deleted":  deleted,
		"messages": messageList(buf.Messages()),
	})
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return s, nil
}

func rowMap(r presenter.Row) map[string]any {
	return map[string]any{
		"id":             r.ID,
		"name":           r.Name,
		"position":       r.Position,
		"department":     r.Department,
		"salary":         r.Salary,
		"salary_display": r.SalaryDisplay,
		"status":         r.Status,
		"deletable":      r.Deletable,
	}
}

func messageList(msgs []notify.Message) []any {
	out := make([]any, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, map[string]any{
			"severity": string(m.Severity),
			"text":     m.Text,
		})
	}
	return out
}

func stringList(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

func boolField(s *structpb.Struct, key string) bool {
	return s.GetFields()[key].GetBoolValue()
}

// salaryField は数値または文字列の salary を読み取ります。未指定の場合は nil を返します。
func salaryField(s *structpb.Struct) (*decimal.Decimal, error) {
	v, ok := s.GetFields()["salary"]
	if !ok || v == nil {
		return nil, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if math.IsNaN(kind.NumberValue) || math.IsInf(kind.NumberValue, 0) {
			return nil, fmt.Errorf("%w: %v is not a finite number", employee.ErrInvalidSalary, kind.NumberValue)
		}
		d := decimal.NewFromFloat(kind.NumberValue)
		return &d, nil
	case *structpb.Value_StringValue:
		text := strings.TrimSpace(kind.StringValue)
		if text == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, err
		}
		return &d, nil
	case *structpb.Value_NullValue:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", kind)
	}
}
