// Package grpchealth exposes the standard gRPC health service so load
// balancers and orchestrators can probe whether any dataset is loaded.
package grpchealth

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/chrissnell/circadian/pkg/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the service reported alongside the overall ("") status
const ServiceName = "circadian"

const defaultCheckInterval = 30 * time.Second

// LoadChecker reports whether any dataset is available; *sources.Store implements it
type LoadChecker interface {
	AnyLoaded() bool
}

// Controller runs the gRPC health server
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	config   config.GRPCData
	Server   *grpc.Server
	health   *health.Server
	checker  LoadChecker
	interval time.Duration
	logger   *zap.SugaredLogger
}

// NewController creates the gRPC server and registers health and reflection
func NewController(ctx context.Context, wg *sync.WaitGroup, gc config.GRPCData, checker LoadChecker, logger *zap.SugaredLogger) (*Controller, error) {
	if checker == nil {
		return nil, fmt.Errorf("gRPC health server needs a dataset checker")
	}

	c := &Controller{
		ctx:      ctx,
		wg:       wg,
		config:   gc,
		health:   health.NewServer(),
		checker:  checker,
		interval: defaultCheckInterval,
		logger:   logger,
	}

	if gc.Cert != "" && gc.Key != "" {
		creds, err := credentials.NewServerTLSFromFile(gc.Cert, gc.Key)
		if err != nil {
			return nil, fmt.Errorf("could not create TLS server from keypair: %v", err)
		}
		c.Server = grpc.NewServer(grpc.Creds(creds))
	} else {
		c.Server = grpc.NewServer()
	}

	healthpb.RegisterHealthServer(c.Server, c.health)
	reflection.Register(c.Server)

	c.updateStatus()

	return c, nil
}

// StartController listens on the configured address and serves until the
// context is cancelled
func (c *Controller) StartController() error {
	addr := fmt.Sprintf("%v:%v", c.config.ListenAddr, c.config.Port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not create gRPC listener: %v", err)
	}

	c.logger.Infof("starting gRPC health server on %s", l.Addr())
	c.Serve(l)
	return nil
}

// Serve runs the server and the status monitor on an existing listener
func (c *Controller) Serve(l net.Listener) {
	c.wg.Add(2)

	go func() {
		defer c.wg.Done()
		if err := c.Server.Serve(l); err != nil {
			c.logger.Errorf("gRPC server error: %v", err)
		}
	}()

	go func() {
		defer c.wg.Done()
		c.monitor()
	}()
}

func (c *Controller) monitor() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.updateStatus()
		case <-c.ctx.Done():
			c.logger.Info("shutting down the gRPC health server...")
			c.health.Shutdown()
			c.Server.GracefulStop()
			return
		}
	}
}

// updateStatus reports SERVING once at least one dataset has loaded
func (c *Controller) updateStatus() {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if c.checker.AnyLoaded() {
		status = healthpb.HealthCheckResponse_SERVING
	}
	c.health.SetServingStatus("", status)
	c.health.SetServingStatus(ServiceName, status)
}
