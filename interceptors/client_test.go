package interceptors

import (
	"context"
	"errors"
	"testing"

	gss "github.com/Keksclan/goSafeSquirrel"
	"github.com/Keksclan/goSafeSquirrel/retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryClient_RetriesThroughTheNet(t *testing.T) {
	rp, err := retry.New(3, retry.WithClassifier(retry.OnCodes(codes.Unavailable)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	net, err := gss.NewSafetyNet(rp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ic := UnaryClient(net)

	calls := 0
	invoker := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
		calls++
		if calls < 3 {
			return status.Error(codes.Unavailable, "try again")
		}
		return nil
	}

	if err := ic(t.Context(), "/svc/Method", nil, nil, nil, invoker); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 invocations, got %d", calls)
	}
}

func TestUnaryClient_NonRetryableErrorSurfaces(t *testing.T) {
	rp, _ := retry.New(3, retry.WithClassifier(retry.OnCodes(codes.Unavailable)))
	net, _ := gss.NewSafetyNet(rp)
	ic := UnaryClient(net)

	calls := 0
	invoker := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
		calls++
		return status.Error(codes.InvalidArgument, "bad request")
	}

	err := ic(t.Context(), "/svc/Method", nil, nil, nil, invoker)
	if err == nil {
		t.Fatal("expected error")
	}
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 invocation, got %d", calls)
	}
}

func TestUnaryClient_EmptyNetIsPassthrough(t *testing.T) {
	net, _ := gss.NewSafetyNet()
	ic := UnaryClient(net)

	boom := errors.New("boom")
	invoker := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
		return boom
	}

	if err := ic(t.Context(), "/svc/Method", nil, nil, nil, invoker); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
