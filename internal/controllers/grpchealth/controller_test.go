package grpchealth

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/chrissnell/circadian/pkg/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type flagChecker struct {
	loaded atomic.Bool
}

func (f *flagChecker) AnyLoaded() bool { return f.loaded.Load() }

func TestUpdateStatus(t *testing.T) {
	checker := &flagChecker{}
	var wg sync.WaitGroup

	c, err := NewController(context.Background(), &wg, config.GRPCData{}, checker, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := func(service string) healthpb.HealthCheckResponse_ServingStatus {
		resp, err := c.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			t.Fatalf("health check for %q failed: %v", service, err)
		}
		return resp.Status
	}

	if got := check(ServiceName); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("expected NOT_SERVING before any load, got %v", got)
	}

	checker.loaded.Store(true)
	c.updateStatus()

	for _, service := range []string{"", ServiceName} {
		if got := check(service); got != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("service %q: expected SERVING, got %v", service, got)
		}
	}
}

func TestServeOverConnection(t *testing.T) {
	checker := &flagChecker{}
	checker.loaded.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	c, err := NewController(ctx, &wg, config.GRPCData{}, checker, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lis := bufconn.Listen(1 << 20)
	c.Serve(lis)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("expected SERVING, got %v", resp.Status)
	}

	conn.Close()
	cancel()
	wg.Wait()
}

func TestNewControllerRequiresChecker(t *testing.T) {
	var wg sync.WaitGroup
	if _, err := NewController(context.Background(), &wg, config.GRPCData{}, nil, zap.NewNop().Sugar()); err == nil {
		t.Error("expected an error without a checker")
	}
}
