package restserver

import (
	"errors"
	"net/http"

	"github.com/chrissnell/circadian/internal/engine"
	"github.com/chrissnell/circadian/internal/series"
	"github.com/chrissnell/circadian/pkg/responseformat"
	"github.com/gorilla/mux"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// WindowResponse is the body of GET /api/window/{selector}
type WindowResponse struct {
	Selector   string        `json:"selector"`
	Recognized bool          `json:"recognized"`
	Window     series.Window `json:"window"`
}

// NightsResponse is the body of GET /api/nights/{mode}
type NightsResponse struct {
	Mode      series.Mode            `json:"mode"`
	Intervals []series.NightInterval `json:"intervals"`
}

// ReloadResponse is the body of POST /api/datasets/{name}/reload
type ReloadResponse struct {
	Name    string `json:"name"`
	Loaded  bool   `json:"loaded"`
	Samples int    `json:"samples"`
}

// GetView computes the chart data for the range, gender and phase query parameters
func (h *Handlers) GetView(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	viewReq, err := h.controller.engine.NewRequest(q.Get("range"), q.Get("gender"), q.Get("phase"))
	if err != nil {
		h.respondError(w, req, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.controller.engine.Compute(req.Context(), viewReq)
	if err != nil {
		h.writeComputeError(w, req, err)
		return
	}

	h.respond(w, req, http.StatusOK, result)
}

// GetWindow resolves a range selector against the loaded data
func (h *Handlers) GetWindow(w http.ResponseWriter, req *http.Request) {
	selector := mux.Vars(req)["selector"]

	window, err := h.controller.engine.Window(req.Context(), selector)
	if err != nil {
		h.writeComputeError(w, req, err)
		return
	}

	h.respond(w, req, http.StatusOK, WindowResponse{
		Selector:   selector,
		Recognized: series.ParseSelector(selector),
		Window:     window,
	})
}

// GetNights returns the lights-off intervals for day, week or all
func (h *Handlers) GetNights(w http.ResponseWriter, req *http.Request) {
	mode, ok := series.ParseMode(mux.Vars(req)["mode"])
	if !ok {
		h.respondError(w, req, http.StatusBadRequest, "mode must be one of day, week or all")
		return
	}

	h.respond(w, req, http.StatusOK, NightsResponse{
		Mode:      mode,
		Intervals: series.NightIntervals(mode),
	})
}

// GetDatasets lists every configured dataset and whether it is loaded
func (h *Handlers) GetDatasets(w http.ResponseWriter, req *http.Request) {
	h.respond(w, req, http.StatusOK, h.controller.datasets.Status())
}

// ReloadDataset fetches one dataset again, replacing the cached copy
func (h *Handlers) ReloadDataset(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	if !h.controller.datasets.Has(name) {
		h.respondError(w, req, http.StatusNotFound, "unknown dataset: "+name)
		return
	}

	raw := h.controller.datasets.Reload(req.Context(), name)
	h.controller.logger.Infof("dataset %s reloaded on request (%d samples)", name, raw.Len())

	h.respond(w, req, http.StatusOK, ReloadResponse{
		Name:    name,
		Loaded:  raw.Len() > 0,
		Samples: raw.Len(),
	})
}

// GetHealth reports 200 when at least one dataset is loaded
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	if !h.controller.datasets.AnyLoaded() {
		h.respond(w, req, http.StatusServiceUnavailable, map[string]string{"status": "no datasets loaded"})
		return
	}
	h.respond(w, req, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) writeComputeError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, engine.ErrAllSourcesFailed) {
		h.controller.logger.Error("no datasets could be loaded; nothing to render")
		h.respondError(w, req, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.controller.logger.Errorf("computation failed: %v", err)
	h.respondError(w, req, http.StatusInternalServerError, err.Error())
}

// respond writes a response and logs it when the body could not be sent
func (h *Handlers) respond(w http.ResponseWriter, req *http.Request, status int, data any) {
	if err := h.formatter.WriteResponse(w, req, status, data); err != nil {
		h.controller.logger.Errorw("failed to write response", "path", req.URL.Path, "status", status, "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, req *http.Request, status int, message string) {
	if err := h.formatter.WriteError(w, req, status, message); err != nil {
		h.controller.logger.Errorw("failed to write error response", "path", req.URL.Path, "status", status, "error", err)
	}
}
