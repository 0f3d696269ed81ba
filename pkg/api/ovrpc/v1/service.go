// Package ovrpc 定义 objvault.v1.ObjectService 的 gRPC 契约
// 请求和响应都是 google.protobuf.Struct，字段约定见 messages.go
package ovrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "objvault.v1.ObjectService"

// 方法名
const (
	MethodAdd            = "Add"
	MethodCommit         = "Commit"
	MethodGet            = "Get"
	MethodRemove         = "Remove"
	MethodCheckout       = "Checkout"
	MethodLog            = "Log"
	MethodHead           = "Head"
	MethodStatus         = "Status"
	MethodBranchCreate   = "BranchCreate"
	MethodBranchFork     = "BranchFork"
	MethodBranchCheckout = "BranchCheckout"
	MethodBranchRemove   = "BranchRemove"
	MethodBranchList     = "BranchList"
)

// FullMethod 返回 "/objvault.v1.ObjectService/<method>"
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ObjectServiceServer 是服务端需要实现的接口
type ObjectServiceServer interface {
	Add(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Commit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Get(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Remove(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Checkout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Log(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Head(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Status(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BranchCreate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BranchFork(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BranchCheckout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BranchRemove(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BranchList(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedObjectServiceServer 可以嵌入到实现中，未实现的方法返回 Unimplemented
type UnimplementedObjectServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedObjectServiceServer) Add(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodAdd)
}
func (UnimplementedObjectServiceServer) Commit(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodCommit)
}
func (UnimplementedObjectServiceServer) Get(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGet)
}
func (UnimplementedObjectServiceServer) Remove(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodRemove)
}
func (UnimplementedObjectServiceServer) Checkout(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodCheckout)
}
func (UnimplementedObjectServiceServer) Log(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodLog)
}
func (UnimplementedObjectServiceServer) Head(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodHead)
}
func (UnimplementedObjectServiceServer) Status(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodStatus)
}
func (UnimplementedObjectServiceServer) BranchCreate(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodBranchCreate)
}
func (UnimplementedObjectServiceServer) BranchFork(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodBranchFork)
}
func (UnimplementedObjectServiceServer) BranchCheckout(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodBranchCheckout)
}
func (UnimplementedObjectServiceServer) BranchRemove(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodBranchRemove)
}
func (UnimplementedObjectServiceServer) BranchList(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodBranchList)
}

type unaryCall func(ObjectServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler 把一个接口方法包装成 grpc.MethodHandler (解码 + 拦截器链)
func unaryHandler(method string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ObjectServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ObjectServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ObjectService_ServiceDesc 是注册到 grpc.Server 的服务描述
var ObjectService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ObjectServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodAdd, Handler: unaryHandler(MethodAdd, ObjectServiceServer.Add)},
		{MethodName: MethodCommit, Handler: unaryHandler(MethodCommit, ObjectServiceServer.Commit)},
		{MethodName: MethodGet, Handler: unaryHandler(MethodGet, ObjectServiceServer.Get)},
		{MethodName: MethodRemove, Handler: unaryHandler(MethodRemove, ObjectServiceServer.Remove)},
		{MethodName: MethodCheckout, Handler: unaryHandler(MethodCheckout, ObjectServiceServer.Checkout)},
		{MethodName: MethodLog, Handler: unaryHandler(MethodLog, ObjectServiceServer.Log)},
		{MethodName: MethodHead, Handler: unaryHandler(MethodHead, ObjectServiceServer.Head)},
		{MethodName: MethodStatus, Handler: unaryHandler(MethodStatus, ObjectServiceServer.Status)},
		{MethodName: MethodBranchCreate, Handler: unaryHandler(MethodBranchCreate, ObjectServiceServer.BranchCreate)},
		{MethodName: MethodBranchFork, Handler: unaryHandler(MethodBranchFork, ObjectServiceServer.BranchFork)},
		{MethodName: MethodBranchCheckout, Handler: unaryHandler(MethodBranchCheckout, ObjectServiceServer.BranchCheckout)},
		{MethodName: MethodBranchRemove, Handler: unaryHandler(MethodBranchRemove, ObjectServiceServer.BranchRemove)},
		{MethodName: MethodBranchList, Handler: unaryHandler(MethodBranchList, ObjectServiceServer.BranchList)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "objvault/v1/object_service",
}

// RegisterObjectServiceServer 注册服务实现
func RegisterObjectServiceServer(s grpc.ServiceRegistrar, srv ObjectServiceServer) {
	s.RegisterService(&ObjectService_ServiceDesc, srv)
}

// ObjectServiceClient 是客户端存根
type ObjectServiceClient interface {
	// Call 调用任意一个 ObjectService 方法
	Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type objectServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewObjectServiceClient(cc grpc.ClientConnInterface) ObjectServiceClient {
	return &objectServiceClient{cc: cc}
}

func (c *objectServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
