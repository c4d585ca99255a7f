package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"emrdash/internal/dashboard"
	"emrdash/internal/dataprocessing"
	"emrdash/pkg/contracts"
	"emrdash/pkg/contracts/domain"
)

// PageTitle is the heading of the HTML dashboard.
const PageTitle = "Ogun EMR Weekly Facility Dashboard"

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

var chartHeadings = []struct {
	id      string
	heading string
}{
	{domain.ChartTxCurrByFacility, "TX_CURR by Facility"},
	{domain.ChartVlSuppressionByLGA, "VL Suppression Rate by LGA"},
	{domain.ChartVlCoverageByLGA, "VL Coverage by LGA"},
}

type option struct {
	Value    string
	Selected bool
}

type chartRef struct {
	Heading string
	URL     string
}

type pageData struct {
	Title   string
	Version string
	Prompt  string

	LoadError string

	StateOptions    []option
	LGAOptions      []option
	FacilityOptions []option

	View          *domain.DashboardView
	PrimaryKPIs   []domain.KPI
	SecondaryKPIs []domain.KPI
	Charts        []chartRef
}

// PageHandler serves the server-rendered dashboard
type PageHandler struct {
	service DashboardServiceInterface
	logger  *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(service DashboardServiceInterface, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		logger:  logger.With(slog.String("component", "page_handler")),
	}
}

// Dashboard handles GET /. A selection in the query string replaces the
// pending one and only changes the option lists.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := pageData{
		Title:   PageTitle,
		Version: contracts.GetVersionString(),
		Prompt:  dashboard.IdlePrompt,
	}

	pending := h.service.Pending(ctx)
	if query := r.URL.Query(); hasSelection(query) {
		pending = selectionFromValues(query)
	}

	resp, err := h.service.Options(ctx, pending)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard page without data", slog.String("error", err.Error()))
		data.LoadError = loadErrorMessage(err, h.service.DatasetStatus().Source)
		h.render(w, r, http.StatusOK, data)
		return
	}

	data.StateOptions = markSelected(resp.Options.States, resp.Selection.States)
	data.LGAOptions = markSelected(resp.Options.LGAs, resp.Selection.LGAs)
	data.FacilityOptions = markSelected(resp.Options.Facilities, resp.Selection.Facilities)

	if state := h.service.State(ctx); state.View != nil {
		view := state.View
		data.View = view
		n := dashboard.PrimaryKPICount
		if n > len(view.KPIs) {
			n = len(view.KPIs)
		}
		data.PrimaryKPIs = view.KPIs[:n]
		data.SecondaryKPIs = view.KPIs[n:]
		for _, c := range chartHeadings {
			if _, ok := view.Chart(c.id); !ok {
				continue
			}
			data.Charts = append(data.Charts, chartRef{
				Heading: c.heading,
				URL:     fmt.Sprintf("/api/dashboard/charts/%s.png?v=%d", c.id, view.AppliedAt.UnixNano()),
			})
		}
	}

	h.render(w, r, http.StatusOK, data)
}

// Apply handles POST /apply from the filter form and redirects to the page.
func (h *PageHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sel := selectionFromValues(r.PostForm)
	if _, err := h.service.Apply(r.Context(), sel); err != nil {
		h.logger.ErrorContext(r.Context(), "apply from page failed", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render dashboard page", slog.String("error", err.Error()))
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// loadErrorMessage is the static text shown instead of the dashboard.
func loadErrorMessage(err error, source string) string {
	if errors.Is(err, dataprocessing.ErrSourceNotFound) {
		return fmt.Sprintf("The data file was not found. Please make sure '%s' exists.", filepath.Base(source))
	}
	return "The data file could not be read. Check the server log for details."
}

func markSelected(values, selected []string) []option {
	set := domain.NewValueSet(selected)
	out := make([]option, len(values))
	for i, v := range values {
		_, ok := set[v]
		out[i] = option{Value: v, Selected: ok}
	}
	return out
}
