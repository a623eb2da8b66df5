// Package report exposes the charging report over HTTP.
package report

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/samber/lo"

	"github.com/kilianp07/chargereport/core/logger"
	"github.com/kilianp07/chargereport/core/model"
	corereport "github.com/kilianp07/chargereport/core/report"
	"github.com/kilianp07/chargereport/infra/charts"
	"github.com/kilianp07/chargereport/pkg/export"
)

// Reporter computes reports over a loaded dataset.
type Reporter interface {
	Vehicles() []string
	DefaultSelection() model.Selection
	Location() *time.Location
	Report(sel model.Selection) corereport.Report
}

// VehiclesResponse lists the selectable vehicles and the default date span.
type VehiclesResponse struct {
	Vehicles []string        `json:"vehicles"`
	Range    model.DateRange `json:"range"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	svc    Reporter
	charts *charts.Renderer
	log    logger.Logger
}

// NewRouter returns the HTTP API serving reports computed by svc.
func NewRouter(svc Reporter, renderer *charts.Renderer, log logger.Logger) http.Handler {
	h := &handler{svc: svc, charts: renderer, log: log}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/vehicles", h.vehicles)
		r.Get("/report", h.report)
		r.Get("/report/{table}", h.table)
		r.Get("/charts/{chart}.png", h.chart)
	})
	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Debugw("request completed", map[string]any{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
		})
	})
}

func (h *handler) vehicles(w http.ResponseWriter, r *http.Request) {
	def := h.svc.DefaultSelection()
	render.JSON(w, r, VehiclesResponse{Vehicles: h.svc.Vehicles(), Range: def.Range})
}

// selection reads start, end and the repeated vehicle parameter. A vehicle
// parameter may also carry a comma-separated list.
func (h *handler) selection(r *http.Request) (model.Selection, error) {
	q := r.URL.Query()
	vehicles := lo.FlatMap(q["vehicle"], func(v string, _ int) []string {
		return strings.Split(v, ",")
	})
	return corereport.ParseSelection(q.Get("start"), q.Get("end"), vehicles, h.svc.Location(), h.svc.DefaultSelection())
}

func (h *handler) compute(w http.ResponseWriter, r *http.Request) (corereport.Report, bool) {
	sel, err := h.selection(r)
	if err != nil {
		fail(w, r, http.StatusBadRequest, err)
		return corereport.Report{}, false
	}
	return h.svc.Report(sel), true
}

func (h *handler) report(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.compute(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, rep)
}

func (h *handler) table(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")
	if !lo.Contains(export.Tables, name) {
		fail(w, r, http.StatusNotFound, export.ErrUnknownTable)
		return
	}
	rep, ok := h.compute(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, rep, name); err != nil {
			fail(w, r, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
		_, _ = w.Write(buf.Bytes())
		return
	}
	v, err := export.Table(rep, name)
	if err != nil {
		fail(w, r, http.StatusNotFound, err)
		return
	}
	render.JSON(w, r, v)
}

func (h *handler) chart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "chart")
	if !lo.Contains(charts.Names, name) {
		fail(w, r, http.StatusNotFound, charts.ErrUnknownChart)
		return
	}
	rep, ok := h.compute(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.charts.Render(&buf, name, rep); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, charts.ErrNoData) {
			status = http.StatusUnprocessableEntity
		} else {
			h.log.Errorf("chart %s: %v", name, err)
		}
		fail(w, r, status, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}
