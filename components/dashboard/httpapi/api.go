package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/queries"
)

// Handlers exposes net/http endpoints backed by the shared commands and
// queries.
type Handlers struct {
	Theme    gocommand.Commander[commands.ToggleThemeInput]
	Refresh  gocommand.Commander[commands.RefreshViewInput]
	Filter   gocommand.Commander[commands.ApplyOrderFilterInput]
	Sort     gocommand.Commander[commands.SortOrdersInput]
	Scenario gocommand.Commander[commands.SelectScenarioInput]
	Orders   gocommand.Querier[queries.OrdersTableInput, dashboard.OrdersTable]
	Regions  gocommand.Querier[queries.RegionSummaryInput, []dashboard.RegionSummary]
}

func (h *Handlers) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	var payload commands.ToggleThemeInput
	if !decode(w, r, &payload) {
		return
	}
	run(w, r, h.Theme, payload, http.StatusOK)
}

func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshViewInput
	if !decode(w, r, &payload) {
		return
	}
	run(w, r, h.Refresh, payload, http.StatusOK)
}

func (h *Handlers) HandleFilterOrders(w http.ResponseWriter, r *http.Request) {
	var payload commands.ApplyOrderFilterInput
	if !decode(w, r, &payload) {
		return
	}
	run(w, r, h.Filter, payload, http.StatusOK)
}

func (h *Handlers) HandleSortOrders(w http.ResponseWriter, r *http.Request) {
	var payload commands.SortOrdersInput
	if !decode(w, r, &payload) {
		return
	}
	run(w, r, h.Sort, payload, http.StatusOK)
}

func (h *Handlers) HandleSelectScenario(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectScenarioInput
	if !decode(w, r, &payload) {
		return
	}
	run(w, r, h.Scenario, payload, http.StatusOK)
}

// HandleOrdersTable returns the current orders table; ?refresh=1 reloads it.
func (h *Handlers) HandleOrdersTable(w http.ResponseWriter, r *http.Request) {
	if h.Orders == nil {
		http.Error(w, errCommandNotConfigured.Error(), http.StatusNotImplemented)
		return
	}
	table, err := h.Orders.Query(r.Context(), queries.OrdersTableInput{Refresh: wantsRefresh(r)})
	if err != nil {
		table.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, table)
}

// HandleRegionSummaries returns the warehouse roll-up including totals.
func (h *Handlers) HandleRegionSummaries(w http.ResponseWriter, r *http.Request) {
	if h.Regions == nil {
		http.Error(w, errCommandNotConfigured.Error(), http.StatusNotImplemented)
		return
	}
	regions, err := h.Regions.Query(r.Context(), queries.RegionSummaryInput{
		Refresh:       wantsRefresh(r),
		IncludeTotals: true,
	})
	body := map[string]any{"regions": regions}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, body)
}

// StatusFor maps command errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errCommandNotConfigured):
		return http.StatusNotImplemented
	case errors.Is(err, dashboard.ErrUnknownView):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrMissingGateway):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func run[T any](w http.ResponseWriter, r *http.Request, cmd gocommand.Commander[T], msg T, okStatus int) {
	if cmd == nil {
		http.Error(w, errCommandNotConfigured.Error(), http.StatusNotImplemented)
		return
	}
	if err := cmd.Execute(r.Context(), msg); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	writeJSON(w, okStatus, map[string]string{"status": "ok"})
}

// decode reads an optional JSON body; an empty body leaves dst untouched.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func wantsRefresh(r *http.Request) bool {
	switch r.URL.Query().Get("refresh") {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
