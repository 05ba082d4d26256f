package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"palette-bridge/internal/grid"
	"palette-bridge/internal/palette"
	"palette-bridge/internal/shortcode"
	"palette-bridge/internal/ui"
)

// ScriptBody renders the localization snippet exposing values under global.
// json.Marshal escapes <, > and & so the snippet is safe inside a script tag.
func ScriptBody(global string, values []string) (string, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("var %s = %s;\n", global, data), nil
}

// handleCSS serves the custom properties for inline injection. 204 means
// there is nothing to inject.
func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	p, ok := s.loadPalette(r)
	css := ""
	if ok {
		css = palette.FormatStyleCSS(s.Config.CSSFormat, p)
	}
	if css == "" {
		MetricInjectionsSkipped.WithLabelValues(palette.OutputCSS).Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	MetricRendersTotal.WithLabelValues(palette.OutputCSS).Inc()
	MetricSkippedRecords.WithLabelValues(palette.OutputCSS).Add(float64(p.Skipped(palette.OutputCSS)))

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	io.WriteString(w, css)
}

// handleScript serves the picker palette as a script-context global.
func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) || !s.requireAdmin(w, r) {
		return
	}

	p, ok := s.loadPalette(r)
	values := palette.Flatten(p)
	if !ok || len(values) == 0 {
		MetricInjectionsSkipped.WithLabelValues(palette.OutputPalette).Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	body, err := ScriptBody(s.Config.PaletteGlobal, values)
	if err != nil {
		ui.LogStatus("error", "Script render failed: "+err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	MetricRendersTotal.WithLabelValues(palette.OutputPalette).Inc()
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	io.WriteString(w, body)
}

// handlePaletteJSON serves the flattened palette as a JSON array.
func (s *Server) handlePaletteJSON(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) || !s.requireAdmin(w, r) {
		return
	}

	p, ok := s.loadPalette(r)
	if !ok {
		MetricInjectionsSkipped.WithLabelValues(palette.OutputPalette).Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	MetricRendersTotal.WithLabelValues(palette.OutputPalette).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(palette.Flatten(p))
}

// handleGrid serves the swatch grid with its stylesheet.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	p, ok := s.loadPalette(r)
	if !ok {
		io.WriteString(w, grid.RenderUnavailable())
		return
	}

	MetricRendersTotal.WithLabelValues(palette.OutputGrid).Inc()
	MetricSkippedRecords.WithLabelValues(palette.OutputGrid).Add(float64(p.Skipped(palette.OutputGrid)))
	io.WriteString(w, grid.StyleTag()+grid.Render(p))
}

// handleRender expands directives in the posted page content.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	ip := s.clientIP(r)
	if !s.limiter.Allow(ip) {
		MetricRateLimited.Inc()
		ui.LogStatus("warn", "Render rate limited: "+ip)
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	content, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	p, ok := s.loadPalette(r)
	out := shortcode.ForPage(p, ok).Expand(string(content))
	if ok {
		MetricSkippedRecords.WithLabelValues(palette.OutputGrid).Add(float64(p.Skipped(palette.OutputGrid)))
	}

	MetricRendersTotal.WithLabelValues("content").Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, out)
}

// HealthResponse is the JSON response for /healthz
type HealthResponse struct {
	Status   string `json:"status"`
	Settings string `json:"settings"`
	Colors   int    `json:"colors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	resp := HealthResponse{Status: "ok", Settings: "available"}
	p, ok := s.loadPalette(r)
	if ok {
		resp.Colors = len(p)
	} else {
		resp.Settings = "unavailable"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := s.admin.Check(r); err != nil {
		MetricAuthFailures.Inc()
		ui.LogStatus("warn", "Admin token rejected from: "+s.clientIP(r))
		w.Header().Set("WWW-Authenticate", `Bearer realm="palette-bridge"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method+", OPTIONS")
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	return false
}
