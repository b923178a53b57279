package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	clientdist "github.com/vango-dev/loadboard/client/dist"
	"github.com/vango-dev/loadboard/internal/errors"
	"github.com/vango-dev/loadboard/pkg/charts"
	"github.com/vango-dev/loadboard/pkg/dashboard"
	"github.com/vango-dev/loadboard/pkg/render"
	"github.com/vango-dev/loadboard/pkg/vango"
	"github.com/vango-dev/loadboard/pkg/workload"
)

type groupSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type pageState struct {
	Selected string         `json:"selected"`
	Groups   []groupSummary `json:"groups"`
}

type chartResponse struct {
	ID        string        `json:"id"`
	AriaLabel string        `json:"ariaLabel"`
	Option    charts.Option `json:"option"`
}

type panelResponse struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Charts []chartResponse `json:"charts"`
}

type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func summaries(groups []workload.Group) []groupSummary {
	out := make([]groupSummary, len(groups))
	for i, g := range groups {
		out[i] = groupSummary{ID: g.ID, Name: g.Name}
	}
	return out
}

// handlePage renders the dashboard. The page is only used for this
// response; the live session builds its own.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	store := workload.NewStore(s.catalog)
	defer store.Close()
	if group != "" {
		if _, err := s.catalog.Get(group); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		store.Select(group)
	}

	defer vango.Release()
	page := dashboard.NewPage(store, dashboard.Options{
		Logger:         s.logger,
		HighlightColor: s.config.HighlightColor,
	})
	defer page.Close()

	live := "/live"
	if group != "" {
		live += "?group=" + url.QueryEscape(group)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := page.Render(w, render.PageOptions{
		Title:     s.config.Title,
		Lang:      "uz",
		ClientSrc: "/static/client.js",
		LiveURL:   live,
		State: pageState{
			Selected: store.Selected().ID,
			Groups:   summaries(s.catalog.Snapshot()),
		},
		Styles:  []string{clientdist.LoadboardCSS},
		Scripts: []string{s.config.EChartsSrc},
	})
	if err != nil {
		s.logger.Error("render page", "error", err)
	}
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(clientdist.LoadboardJS)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"groups":   len(s.catalog.Snapshot()),
		"sessions": s.sessions.Count(),
	})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, summaries(s.catalog.Snapshot()))
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	g, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	g, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	panels := charts.Panels(g.Data)
	out := make([]panelResponse, len(panels))
	for i, p := range panels {
		out[i] = panelResponse{ID: p.ID, Title: p.Title}
		for _, c := range p.Charts {
			out[i].Charts = append(out[i].Charts, chartResponse{
				ID:        c.ID,
				AriaLabel: c.AriaLabel,
				Option:    c.Option,
			})
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if stderrors.Is(err, workload.ErrGroupNotFound) {
		status = http.StatusNotFound
	}
	resp := errorResponse{Code: errors.Code(err), Message: err.Error()}
	var le *errors.Error
	if stderrors.As(err, &le) {
		resp.Message = le.Message
		if le.Detail != "" {
			resp.Message += ": " + le.Detail
		}
	}
	s.writeJSON(w, status, resp)
}
