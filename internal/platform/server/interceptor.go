package server

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDKey はリクエスト ID を受け渡すメタデータのキーです。
const RequestIDKey = "x-request-id"

// UnaryLoggingInterceptor はリクエスト ID を付けた logger を ctx に載せ、呼び出し結果を記録します。
func UnaryLoggingInterceptor(base zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		requestID := incomingRequestID(ctx)
		logger := base.With().Str("request_id", requestID).Str("method", info.FullMethod).Logger()
		ctx = logger.WithContext(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, requestID))

		start := time.Now()
		resp, err := next(ctx, req)
		code := status.Code(err)

		var event *zerolog.Event
		switch code {
		case codes.OK:
			event = logger.Info()
		case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
			event = logger.Error().Err(err)
		default:
			event = logger.Warn().Err(err)
		}
		event.Str("code", code.String()).Dur("elapsed", time.Since(start)).Msg("grpc call")

		return resp, err
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDKey); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}

// UnaryRecoveryInterceptor はハンドラ内の panic を codes.Internal に変換し、プロセスを停止させません。
func UnaryRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				zerolog.Ctx(ctx).Error().
					Str("method", info.FullMethod).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("grpc handler panicked")
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
		}()
		return next(ctx, req)
	}
}
