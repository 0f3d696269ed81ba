package client

import (
	"context"
	"fmt"
	"time"

	ovrpc "objvault/pkg/api/ovrpc/v1"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// Reply 是远程调用的结果，对应服务端的一个 Operation Result
type Reply = ovrpc.Reply

// OVClient 封装了与 objvault 服务端的连接
type OVClient struct {
	conn    *grpc.ClientConn
	rpc     ovrpc.ObjectServiceClient
	timeout time.Duration
}

// NewOVClient 创建并初始化客户端
// 注意：这里不需要 context，因为它只负责创建对象，不负责等待连接就绪
func NewOVClient(addr string, timeout time.Duration, extra ...grpc.DialOption) (*OVClient, error) {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		// 保持连接活跃
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                10 * time.Second,
			Timeout:             20 * time.Second,
			PermitWithoutStream: true,
		}),
	}
	opts = append(opts, extra...)

	// grpc.NewClient 会立即返回，连接在后台进行
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		// 这里的 err 通常只是配置错误（如地址格式不对），网络不通不会在这里报错
		return nil, fmt.Errorf("failed to create grpc client for %s: %w", addr, err)
	}

	return &OVClient{
		conn:    conn,
		rpc:     ovrpc.NewObjectServiceClient(conn),
		timeout: timeout,
	}, nil
}

// Close 关闭底层连接
func (c *OVClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// call 发起一次调用，timeout > 0 时附加超时
func (c *OVClient) call(ctx context.Context, method string, req ovrpc.Request) (Reply, error) {
	in, err := req.ToStruct()
	if err != nil {
		return Reply{}, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := c.rpc.Call(ctx, method, in)
	if err != nil {
		return Reply{}, fmt.Errorf("%s: %w", method, err)
	}
	return ovrpc.ParseReply(out), nil
}

func (c *OVClient) Add(ctx context.Context, name string, obj any) (Reply, error) {
	return c.call(ctx, ovrpc.MethodAdd, ovrpc.Request{Name: name, Object: obj})
}

func (c *OVClient) Commit(ctx context.Context, message string) (Reply, error) {
	return c.call(ctx, ovrpc.MethodCommit, ovrpc.Request{Message: message})
}

func (c *OVClient) Get(ctx context.Context, name string) (Reply, error) {
	return c.call(ctx, ovrpc.MethodGet, ovrpc.Request{Name: name})
}

func (c *OVClient) Remove(ctx context.Context, name string) (Reply, error) {
	return c.call(ctx, ovrpc.MethodRemove, ovrpc.Request{Name: name})
}

func (c *OVClient) Checkout(ctx context.Context, hash string) (Reply, error) {
	return c.call(ctx, ovrpc.MethodCheckout, ovrpc.Request{Hash: hash})
}

func (c *OVClient) Log(ctx context.Context) (Reply, error) {
	return c.call(ctx, ovrpc.MethodLog, ovrpc.Request{})
}

func (c *OVClient) Head(ctx context.Context) (Reply, error) {
	return c.call(ctx, ovrpc.MethodHead, ovrpc.Request{})
}

func (c *OVClient) Status(ctx context.Context) (Reply, error) {
	return c.call(ctx, ovrpc.MethodStatus, ovrpc.Request{})
}

func (c *OVClient) BranchCreate(ctx context.Context, name string) (Reply, error) {
	return c.call(ctx, ovrpc.MethodBranchCreate, ovrpc.Request{Name: name})
}

func (c *OVClient) BranchFork(ctx context.Context, name string) (Reply, error) {
	return c.call(ctx, ovrpc.MethodBranchFork, ovrpc.Request{Name: name})
}

func (c *OVClient) BranchCheckout(ctx context.Context, name string) (Reply, error) {
	return c.call(ctx, ovrpc.MethodBranchCheckout, ovrpc.Request{Name: name})
}

func (c *OVClient) BranchRemove(ctx context.Context, name string) (Reply, error) {
	return c.call(ctx, ovrpc.MethodBranchRemove, ovrpc.Request{Name: name})
}

func (c *OVClient) BranchList(ctx context.Context) (Reply, error) {
	return c.call(ctx, ovrpc.MethodBranchList, ovrpc.Request{})
}
