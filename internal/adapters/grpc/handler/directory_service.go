package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// DirectoryServiceName は社員名簿サービスの完全修飾名です。
const DirectoryServiceName = "employee.v1.DirectoryService"

// DirectoryServiceServer は DirectoryService のサーバー側インターフェースです。
// リクエストとレスポンスは google.protobuf.Struct で表現します。
type DirectoryServiceServer interface {
	ListOptions(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ListEmployees(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterDirectoryServiceServer は srv を gRPC サーバーへ登録します。
func RegisterDirectoryServiceServer(s grpc.ServiceRegistrar, srv DirectoryServiceServer) {
	s.RegisterService(&DirectoryServiceDesc, srv)
}

// DirectoryServiceDesc は DirectoryService のサービス定義です。
var DirectoryServiceDesc = grpc.ServiceDesc{
	ServiceName: DirectoryServiceName,
	HandlerType: (*DirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListOptions", Handler: listOptionsHandler},
		{MethodName: "ListEmployees", Handler: structHandler("ListEmployees", DirectoryServiceServer.ListEmployees)},
		{MethodName: "GetEmployee", Handler: structHandler("GetEmployee", DirectoryServiceServer.GetEmployee)},
		{MethodName: "SaveEmployee", Handler: structHandler("SaveEmployee", DirectoryServiceServer.SaveEmployee)},
		{MethodName: "DeleteEmployee", Handler: structHandler("DeleteEmployee", DirectoryServiceServer.DeleteEmployee)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "employee/v1/directory.proto",
}

func fullMethod(method string) string {
	return "/" + DirectoryServiceName + "/" + method
}

func listOptionsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectoryServiceServer).ListOptions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("ListOptions")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DirectoryServiceServer).ListOptions(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func structHandler(method string, call func(DirectoryServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DirectoryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DirectoryServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DirectoryServiceClient は DirectoryService のクライアントです。
type DirectoryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDirectoryServiceClient は cc を使う DirectoryServiceClient を生成します。
func NewDirectoryServiceClient(cc grpc.ClientConnInterface) *DirectoryServiceClient {
	return &DirectoryServiceClient{cc: cc}
}

func (c *DirectoryServiceClient) ListOptions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("ListOptions"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DirectoryServiceClient) ListEmployees(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListEmployees", in, opts...)
}

func (c *DirectoryServiceClient) GetEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetEmployee", in, opts...)
}

func (c *DirectoryServiceClient) SaveEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "SaveEmployee", in, opts...)
}

func (c *DirectoryServiceClient) DeleteEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "DeleteEmployee", in, opts...)
}

func (c *DirectoryServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
