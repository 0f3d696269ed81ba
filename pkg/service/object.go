package service

import (
	"context"
	"fmt"

	ovrpc "objvault/pkg/api/ovrpc/v1"
	"objvault/pkg/app"
	"objvault/pkg/core"
	"objvault/pkg/objectstore"
	"objvault/pkg/types"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ObjectService 把 ObjectStore 暴露为 gRPC 服务
// 预期内的失败 (找不到、没有历史) 仍然是 success=false 的正常响应，
// 只有请求不合法或编码失败才返回 gRPC 错误
type ObjectService struct {
	ovrpc.UnimplementedObjectServiceServer
	app *app.App
}

func NewObjectService(application *app.App) *ObjectService {
	return &ObjectService{app: application}
}

func (s *ObjectService) store() *objectstore.Store { return s.app.Store }

func (s *ObjectService) Add(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := ovrpc.ParseRequest(req)
	if err := requireField(ovrpc.FieldName, r.Name); err != nil {
		return nil, err
	}
	return reply(s.store().Add(r.Name, r.Object))
}

func (s *ObjectService) Commit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := ovrpc.ParseRequest(req)
	if err := requireField(ovrpc.FieldMessage, r.Message); err != nil {
		return nil, err
	}
	return reply(s.store().Commit(r.Message))
}

func (s *ObjectService) Get(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := ovrpc.ParseRequest(req)
	if err := requireField(ovrpc.FieldName, r.Name); err != nil {
		return nil, err
	}
	return reply(s.store().Get(r.Name))
}

func (s *ObjectService) Remove(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := ovrpc.ParseRequest(req)
	if err := requireField(ovrpc.FieldName, r.Name); err != nil {
		return nil, err
	}
	return reply(s.store().Remove(r.Name))
}

func (s *ObjectService) Checkout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := ovrpc.ParseRequest(req)
	if err := requireField(ovrpc.FieldHash, r.Hash); err != nil {
		return nil, err
	}
	return reply(s.store().Checkout(types.Hash(r.Hash)))
}

func (s *ObjectService) Log(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return reply(s.store().Log())
}

func (s *ObjectService) Head(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return reply(s.store().Head())
}

func (s *ObjectService) Status(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return reply(s.store().Status())
}

func (s *ObjectService) BranchCreate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := branchName(req)
	if err != nil {
		return nil, err
	}
	return reply(s.store().Branch().Create(name))
}

func (s *ObjectService) BranchFork(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := branchName(req)
	if err != nil {
		return nil, err
	}
	return reply(s.store().Branch().Fork(name))
}

func (s *ObjectService) BranchCheckout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := branchName(req)
	if err != nil {
		return nil, err
	}
	return reply(s.store().Branch().Checkout(name))
}

func (s *ObjectService) BranchRemove(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := branchName(req)
	if err != nil {
		return nil, err
	}
	return reply(s.store().Branch().Remove(name))
}

func (s *ObjectService) BranchList(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return reply(s.store().Branch().List())
}

// -----------------------------------------------------------------------------
// 辅助函数
// -----------------------------------------------------------------------------

func requireField(field, value string) error {
	if value == "" {
		return status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	return nil
}

func branchName(req *structpb.Struct) (types.BranchName, error) {
	r := ovrpc.ParseRequest(req)
	if err := requireField(ovrpc.FieldName, r.Name); err != nil {
		return "", err
	}
	return types.BranchName(r.Name), nil
}

// reply 把 Result 转成响应 (DTO)
func reply(res objectstore.Result) (*structpb.Struct, error) {
	out, err := ovrpc.Reply{
		Message: res.Message,
		Success: res.OK(),
		Kind:    res.Kind().String(),
		Value:   encodeValue(res.Value),
	}.ToStruct()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode result: %v", err)
	}
	return out, nil
}

// encodeValue 把 Result 的 payload 转成 structpb 能表示的值
func encodeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *core.Commit:
		return commitView(x)
	case []*core.Commit:
		out := make([]any, 0, len(x))
		for _, c := range x {
			out = append(out, commitView(c))
		}
		return out
	case types.BranchName:
		return x.String()
	case []types.BranchName:
		out := make([]any, 0, len(x))
		for _, b := range x {
			out = append(out, b.String())
		}
		return out
	case []string:
		out := make([]any, 0, len(x))
		for _, n := range x {
			out = append(out, n)
		}
		return out
	}

	// structpb 不认识的类型退化成字符串
	if _, err := structpb.NewValue(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return v
}

func commitView(c *core.Commit) map[string]any {
	objects := make(map[string]any, c.Len())
	for name, obj := range c.Snapshot() {
		objects[name] = encodeValue(obj)
	}
	return map[string]any{
		"hash":    c.Hash().String(),
		"message": c.Message(),
		"date":    c.Date(),
		"objects": objects,
	}
}
