package managers

import (
	"context"
	"fmt"
	"sync"

	"github.com/chrissnell/circadian/internal/controllers"
	"github.com/chrissnell/circadian/internal/controllers/grpchealth"
	"github.com/chrissnell/circadian/internal/controllers/restserver"
	"github.com/chrissnell/circadian/internal/engine"
	"github.com/chrissnell/circadian/internal/sources"
	"github.com/chrissnell/circadian/pkg/config"
	"go.uber.org/zap"
)

// ControllerManager interface for the controller manager
type ControllerManager interface {
	StartControllers() error
}

// NewControllerManager creates the REST server and, if a gRPC port is
// configured, the gRPC health server
func NewControllerManager(ctx context.Context, wg *sync.WaitGroup, c *config.ConfigData, eng *engine.Engine, store *sources.Store, logger *zap.SugaredLogger) (ControllerManager, error) {
	cm := &controllerManager{
		ctx:         ctx,
		wg:          wg,
		logger:      logger,
		controllers: make([]controllers.Controller, 0, 2),
	}

	rest, err := restserver.NewController(ctx, wg, c.Server, eng, store, logger.Named("rest"))
	if err != nil {
		return nil, fmt.Errorf("error creating REST controller: %v", err)
	}
	cm.controllers = append(cm.controllers, rest)

	if c.GRPC != nil && c.GRPC.Port > 0 {
		gh, err := grpchealth.NewController(ctx, wg, *c.GRPC, store, logger.Named("grpc"))
		if err != nil {
			return nil, fmt.Errorf("error creating gRPC health controller: %v", err)
		}
		cm.controllers = append(cm.controllers, gh)
	}

	return cm, nil
}

type controllerManager struct {
	ctx         context.Context
	wg          *sync.WaitGroup
	logger      *zap.SugaredLogger
	controllers []controllers.Controller
}

func (c *controllerManager) StartControllers() error {
	c.logger.Info("Starting controller manager...")

	for _, controller := range c.controllers {
		err := controller.StartController()
		if err != nil {
			return fmt.Errorf("error starting controller: %v", err)
		}
	}

	c.logger.Infof("Started %d controllers successfully", len(c.controllers))
	return nil
}
