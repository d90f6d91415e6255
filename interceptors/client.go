// Package interceptors adapts a SafetyNet to gRPC client calls so that
// outbound RPCs are guarded without touching call sites.
package interceptors

import (
	"context"

	gss "github.com/Keksclan/goSafeSquirrel"
	"google.golang.org/grpc"
)

// UnaryClient returns a [grpc.UnaryClientInterceptor] that runs every unary
// invocation through net. Policy rejections (open circuit, rate limit) and
// conversions (retries exceeded) surface as the call's error.
func UnaryClient(net *gss.SafetyNet) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		_, err := net.Execute(ctx, func(ctx context.Context) (any, error) {
			return nil, invoker(ctx, method, req, reply, cc, opts...)
		})
		return err
	}
}
