package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/codex-employee-directory/internal/adapters/notify"
	"github.com/ogurasousui/codex-employee-directory/internal/core/employee"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, employee.ErrValidation),
		errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidSalary),
		errors.Is(err, employee.ErrInvalidStatus):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrDeleteGuarded):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, employee.ErrEmployeeAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// toStatusErrorWithNotice はリクエスト中に通知された最後のエラーメッセージを status の先頭に付けます。
func toStatusErrorWithNotice(err error, buf *notify.Buffer) error {
	st := status.Convert(toStatusError(err))
	if buf == nil {
		return st.Err()
	}
	msgs := buf.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Severity == employee.SeverityError {
			return status.Error(st.Code(), msgs[i].Text+": "+st.Message())
		}
	}
	return st.Err()
}
