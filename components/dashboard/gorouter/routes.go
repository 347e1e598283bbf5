package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-dispatch-dashboard/components/dashboard"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/httpapi"
)

// Config wires go-router with the dashboard controller and actions.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *dashboard.Controller
	API        httpapi.Executor
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	Page     string
	Data     string
	Theme    string
	Sidenav  string
	Refresh  string
	Filter   string
	Sort     string
	Scenario string
}

// Register mounts the HTML pages, JSON views and POST actions.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := strings.TrimSuffix(cfg.BasePath, "/")

	group := cfg.Router.Group(base)

	group.Get("/", router.WrapHandler(func(ctx router.Context) error {
		return renderPage(ctx, cfg.Controller, dashboard.ViewDashboard)
	}))

	group.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		view, err := dashboard.ParseViewName(ctx.Param("page"))
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return renderPage(ctx, cfg.Controller, view)
	}))

	group.Get(routes.Data, router.WrapHandler(func(ctx router.Context) error {
		view, err := dashboard.ParseViewName(ctx.Param("page"))
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		payload, err := cfg.Controller.Fetch(ctx.Context(), view)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerActions(group, cfg.API, base, routes)
	}
	return nil
}

func renderPage(ctx router.Context, controller *dashboard.Controller, view dashboard.ViewName) error {
	var buf bytes.Buffer
	if err := controller.Show(ctx.Context(), view, &buf); err != nil {
		return respondError(ctx, http.StatusInternalServerError, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(buf.Bytes())
}

func registerActions[T any](r router.Router[T], api httpapi.Executor, base string, routes RouteConfig) {
	r.Post(routes.Theme, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ToggleThemeInput
		form, err := bind(ctx, &payload)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if form != nil {
			payload.Theme = form.Get("theme")
		}
		return respond(ctx, form, back(ctx, base, dashboard.ViewDashboard), api.ToggleTheme(ctx.Context(), payload))
	}))

	r.Post(routes.Sidenav, router.WrapHandler(func(ctx router.Context) error {
		err := api.ToggleSidenav(ctx.Context(), commands.ToggleSidenavInput{})
		return respond(ctx, formOf(ctx), back(ctx, base, dashboard.ViewDashboard), err)
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshViewInput
		form, err := bind(ctx, &payload)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if form != nil {
			payload.View = form.Get("view")
			payload.All, _ = strconv.ParseBool(form.Get("all"))
		}
		return respond(ctx, form, back(ctx, base, dashboard.ViewDashboard), api.Refresh(ctx.Context(), payload))
	}))

	r.Post(routes.Filter, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ApplyOrderFilterInput
		form, err := bind(ctx, &payload)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if form != nil {
			payload.Status = form.Get("status")
			payload.Filter = form.Get("filter")
		}
		return respond(ctx, form, pagePath(base, dashboard.ViewOrders), api.FilterOrders(ctx.Context(), payload))
	}))

	r.Post(routes.Sort, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SortOrdersInput
		form, err := bind(ctx, &payload)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if form != nil {
			payload.Column = form.Get("column")
			payload.Direction = form.Get("direction")
		}
		return respond(ctx, form, pagePath(base, dashboard.ViewOrders), api.SortOrders(ctx.Context(), payload))
	}))

	r.Post(routes.Scenario, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SelectScenarioInput
		form, err := bind(ctx, &payload)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if form != nil {
			payload.Scenario = form.Get("scenario")
			if raw := form.Get("confidence"); raw != "" {
				value, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return respondError(ctx, http.StatusBadRequest, err)
				}
				payload.Confidence = &value
			}
		}
		return respond(ctx, form, pagePath(base, dashboard.ViewForecastSettings), api.SelectScenario(ctx.Context(), payload))
	}))
}

// bind decodes a JSON body into dst, or returns the parsed form for
// url-encoded submissions.
func bind(ctx router.Context, dst any) (url.Values, error) {
	body := ctx.Body()
	if isJSON(ctx) {
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, nil
		}
		return nil, json.Unmarshal(body, dst)
	}
	return url.ParseQuery(string(body))
}

func formOf(ctx router.Context) url.Values {
	if isJSON(ctx) {
		return nil
	}
	form, _ := url.ParseQuery(string(ctx.Body()))
	return form
}

func isJSON(ctx router.Context) bool {
	return strings.Contains(strings.ToLower(ctx.Header("Content-Type")), "json")
}

// respond redirects browser form posts back to a page and answers JSON
// callers with a status document. Form posts redirect even on failure; the
// page shows the view's error state.
func respond(ctx router.Context, form url.Values, location string, err error) error {
	if form != nil {
		ctx.SetHeader("Location", location)
		return ctx.JSON(http.StatusSeeOther, map[string]string{"status": "redirect"})
	}
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func back(ctx router.Context, base string, fallback dashboard.ViewName) string {
	if referer := ctx.Header("Referer"); referer != "" {
		if u, err := url.Parse(referer); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return pagePath(base, fallback)
}

func pagePath(base string, view dashboard.ViewName) string {
	return base + "/" + string(view)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Page == "" {
		routes.Page = "/:page"
	}
	if routes.Data == "" {
		routes.Data = "/api/:page"
	}
	if routes.Theme == "" {
		routes.Theme = "/actions/theme"
	}
	if routes.Sidenav == "" {
		routes.Sidenav = "/actions/sidenav"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/actions/refresh"
	}
	if routes.Filter == "" {
		routes.Filter = "/actions/orders/filter"
	}
	if routes.Sort == "" {
		routes.Sort = "/actions/orders/sort"
	}
	if routes.Scenario == "" {
		routes.Scenario = "/actions/forecast/scenario"
	}
	return routes
}
