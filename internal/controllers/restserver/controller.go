// Package restserver serves computed chart data to the rendering front end.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/circadian/internal/engine"
	"github.com/chrissnell/circadian/internal/series"
	"github.com/chrissnell/circadian/internal/sources"
	"github.com/chrissnell/circadian/pkg/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Computer produces chart data; *engine.Engine implements it
type Computer interface {
	NewRequest(rangeSel, gender, phase string) (engine.Request, error)
	Compute(ctx context.Context, req engine.Request) (*engine.Result, error)
	Window(ctx context.Context, selector string) (series.Window, error)
}

// DatasetRegistry reports and refreshes loaded datasets; *sources.Store implements it
type DatasetRegistry interface {
	Status() []sources.DatasetStatus
	Has(name string) bool
	Reload(ctx context.Context, name string) series.RawSeries
	AnyLoaded() bool
}

// Controller represents the REST server controller
type Controller struct {
	ctx          context.Context
	wg           *sync.WaitGroup
	serverConfig config.ServerData
	Server       http.Server
	engine       Computer
	datasets     DatasetRegistry
	logger       *zap.SugaredLogger
	handlers     *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, sc config.ServerData, eng Computer, datasets DatasetRegistry, logger *zap.SugaredLogger) (*Controller, error) {
	if eng == nil || datasets == nil {
		return nil, fmt.Errorf("REST server needs an engine and a dataset registry")
	}

	ctrl := &Controller{
		ctx:          ctx,
		wg:           wg,
		serverConfig: sc,
		engine:       eng,
		datasets:     datasets,
		logger:       logger,
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if sc.ListenAddr == "" {
		logger.Info("server.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		ctrl.serverConfig.ListenAddr = config.DefaultListenAddr
	}

	if sc.Port == 0 {
		logger.Infof("server.port not provided; defaulting to %d", config.DefaultPort)
		ctrl.serverConfig.Port = config.DefaultPort
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.serverConfig.ListenAddr, ctrl.serverConfig.Port)
	ctrl.Server.Handler = ctrl.Handler()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	c.logger.Infof("starting REST server on %s", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.serverConfig.Cert != "" && c.serverConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.serverConfig.Cert, c.serverConfig.Key); err != http.ErrServerClosed {
				c.logger.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				c.logger.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// Handler returns the routed, logged and optionally CORS-wrapped handler
func (c *Controller) Handler() http.Handler {
	var h http.Handler = c.setupRouter()
	if c.serverConfig.EnableCORS {
		h = handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		)(h)
	}
	return requestLogger(h)
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/view", c.handlers.GetView).Methods(http.MethodGet)
	api.HandleFunc("/window/{selector}", c.handlers.GetWindow).Methods(http.MethodGet)
	api.HandleFunc("/nights/{mode}", c.handlers.GetNights).Methods(http.MethodGet)
	api.HandleFunc("/datasets", c.handlers.GetDatasets).Methods(http.MethodGet)
	api.HandleFunc("/datasets/{name}/reload", c.handlers.ReloadDataset).Methods(http.MethodPost)

	router.HandleFunc("/healthz", c.handlers.GetHealth).Methods(http.MethodGet)

	return router
}
