package server

import (
	"time"

	ovrpc "objvault/pkg/api/ovrpc/v1"
	"objvault/pkg/app"
	"objvault/pkg/service"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// New 组装 gRPC Server：拦截器链 + keepalive + ObjectService + 反射
func New(application *app.App, extra ...grpc.ServerOption) *grpc.Server {
	opts := []grpc.ServerOption{
		// Recovery 在内层，panic 转换后的 Internal 状态码也会被 Logging 记录
		grpc.ChainUnaryInterceptor(
			UnaryLoggingInterceptor(application.Logger),
			UnaryRecoveryInterceptor(application.Logger),
		),
		// 与客户端的 keepalive 参数配套，允许 10s 的空闲 ping
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	}
	opts = append(opts, extra...)

	grpcServer := grpc.NewServer(opts...)
	ovrpc.RegisterObjectServiceServer(grpcServer, service.NewObjectService(application))

	// Enable Reflection for debugging tools (grpcurl)
	reflection.Register(grpcServer)

	return grpcServer
}
