package server

import (
	"context"
	"math"
	"net"
	"strings"
	"testing"

	"github.com/ogurasousui/codex-employee-directory/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-employee-directory/internal/adapters/notify"
	"github.com/ogurasousui/codex-employee-directory/internal/adapters/repository/memory"
	"github.com/ogurasousui/codex-employee-directory/internal/core/employee"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func startDirectoryServer(t *testing.T) (*handler.DirectoryServiceClient, *memory.EmployeeRepository) {
	t.Helper()

	repo := memory.NewEmployeeRepository(
		&employee.Employee{
			ID: "NV001", Name: "Nguyễn Văn An", Position: employee.PositionStaff,
			Department: employee.DepartmentIT, Salary: decimal.NewFromInt(1000), Status: employee.StatusProbation,
		},
		&employee.Employee{
			ID: "NV002", Name: "Trần Thị Bình", Position: employee.PositionManager,
			Department: employee.DepartmentHR, Salary: decimal.NewFromInt(3000), Status: employee.StatusContracted,
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	dir := employee.NewDirectory(repo, nil, notify.Notifier{})
	require.NoError(t, dir.Load(ctx))

	lis := bufconn.Listen(1 << 20)
	srv := New("bufnet", dir, zerolog.Nop())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		assert.NoError(t, <-done)
	})

	return handler.NewDirectoryServiceClient(conn), repo
}

func request(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func messageTexts(resp *structpb.Struct) []string {
	var out []string
	for _, v := range resp.GetFields()["messages"].GetListValue().GetValues() {
		out = append(out, v.GetStructValue().GetFields()["text"].GetStringValue())
	}
	return out
}

func TestServer_DirectoryServiceEndToEnd(t *testing.T) {
	client, repo := startDirectoryServer(t)
	ctx := context.Background()

	opts, err := client.ListOptions(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Len(t, opts.GetFields()["departments"].GetListValue().GetValues(), 4)

	saved, err := client.SaveEmployee(ctx, request(t, map[string]any{
		"name":       "  Lê Văn Cường ",
		"position":   string(employee.PositionDirector),
		"department": string(employee.DepartmentSales),
		"salary":     2500,
		"status":     string(employee.StatusProbation),
	}))
	require.NoError(t, err)
	created := saved.GetFields()["employee"].GetStructValue().GetFields()
	assert.Equal(t, "NV003", created["id"].GetStringValue())
	assert.Equal(t, "Lê Văn Cường", created["name"].GetStringValue())
	assert.Equal(t, "$2,500", created["salary_display"].GetStringValue())
	assert.Contains(t, messageTexts(saved), employee.MessageSaved+" NV003")

	listed, err := client.ListEmployees(ctx, request(t, map[string]any{"search_text": "lê"}))
	require.NoError(t, err)
	items := listed.GetFields()["employees"].GetListValue().GetValues()
	require.Len(t, items, 1)
	assert.Equal(t, "NV003", items[0].GetStructValue().GetFields()["id"].GetStringValue())

	sorted, err := client.ListEmployees(ctx, request(t, map[string]any{"sort_by_salary": true}))
	require.NoError(t, err)
	var order []string
	for _, v := range sorted.GetFields()["employees"].GetListValue().GetValues() {
		order = append(order, v.GetStructValue().GetFields()["id"].GetStringValue())
	}
	assert.Equal(t, []string{"NV002", "NV003", "NV001"}, order)

	_, err = client.DeleteEmployee(ctx, request(t, map[string]any{"id": "NV002", "confirmed": true}))
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.True(t, strings.HasPrefix(status.Convert(err).Message(), employee.MessageDeleteGuarded))

	kept, err := client.DeleteEmployee(ctx, request(t, map[string]any{"id": "NV001"}))
	require.NoError(t, err)
	assert.False(t, kept.GetFields()["deleted"].GetBoolValue())

	removed, err := client.DeleteEmployee(ctx, request(t, map[string]any{"id": "NV001", "confirmed": true}))
	require.NoError(t, err)
	assert.True(t, removed.GetFields()["deleted"].GetBoolValue())

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	var ids []string
	for _, e := range stored {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"NV002", "NV003"}, ids)

	_, err = client.GetEmployee(ctx, request(t, map[string]any{"id": "NV001"}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServer_SaveEmployeeRejectsIncompleteForm(t *testing.T) {
	client, repo := startDirectoryServer(t)
	ctx := context.Background()

	_, err := client.SaveEmployee(ctx, request(t, map[string]any{
		"name":       "",
		"position":   string(employee.PositionStaff),
		"department": string(employee.DepartmentIT),
		"salary":     "100",
		"status":     string(employee.StatusProbation),
	}))
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.True(t, strings.HasPrefix(status.Convert(err).Message(), employee.MessageIncompleteForm))

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestServer_EchoesRequestID(t *testing.T) {
	client, _ := startDirectoryServer(t)

	ctx := metadata.AppendToOutgoingContext(context.Background(), RequestIDKey, "req-42")
	var header metadata.MD
	_, err := client.ListOptions(ctx, &emptypb.Empty{}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, []string{"req-42"}, header.Get(RequestIDKey))

	header = nil
	_, err = client.ListOptions(context.Background(), &emptypb.Empty{}, grpc.Header(&header))
	require.NoError(t, err)
	require.Len(t, header.Get(RequestIDKey), 1)
	assert.NotEmpty(t, header.Get(RequestIDKey)[0])
}

func TestServer_SaveEmployeeRejectsOutOfRangeSalary(t *testing.T) {
	client, repo := startDirectoryServer(t)
	ctx := context.Background()

	for name, salary := range map[string]*structpb.Value{
		"NaN":      structpb.NewNumberValue(math.NaN()),
		"Inf":      structpb.NewNumberValue(math.Inf(1)),
		"too big":  structpb.NewStringValue("1e20"),
		"at limit": structpb.NewStringValue("1000000000000"),
	} {
		req := request(t, map[string]any{
			"name":       "Võ Thị Em",
			"position":   string(employee.PositionStaff),
			"department": string(employee.DepartmentIT),
			"status":     string(employee.StatusProbation),
		})
		req.Fields["salary"] = salary

		_, err := client.SaveEmployee(ctx, req)
		require.Error(t, err, name)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), name)
	}

	_, err := client.ListOptions(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
