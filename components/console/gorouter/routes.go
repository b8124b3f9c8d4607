package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-waconsole/components/board"
	"github.com/goliatone/go-waconsole/components/console"
	"github.com/goliatone/go-waconsole/components/console/commands"
	"github.com/goliatone/go-waconsole/components/console/httpapi"
	"github.com/goliatone/go-waconsole/components/console/queries"
	"github.com/goliatone/go-waconsole/components/records"
)

// ViewerResolver converts a router.Context into a console.ViewerContext.
type ViewerResolver func(router.Context) console.ViewerContext

// Config wires go-router with the console controller, API, and board hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *console.Controller
	API            httpapi.Executor
	Broadcast      *board.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	HTML      string
	Overview  string
	Analyze   string
	Table     string
	Calendar  string
	Board     string
	BoardMove string
	Records   string
	Quota     string
	Features  string
	WebSocket string
}

// Register mounts console routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/console"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), viewer, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Overview, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		payload, err := cfg.Controller.OverviewPayload(ctx.Context(), viewer)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, console.ErrUnauthorized) {
				status = http.StatusForbidden
			}
			return respondError(ctx, status, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Analyze, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Template string `json:"template"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		analysis, err := api.Analyze(ctx.Context(), payload.Template)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, analysis)
	}))

	r.Get(routes.Table, router.WrapHandler(func(ctx router.Context) error {
		collection := ctx.Param("collection")
		if collection == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("collection is required"))
		}
		input := queries.TableInput{
			Collection: collection,
			Query: records.TableQuery{
				SortBy: ctx.Query("sort_by"),
				Desc:   ctx.Query("order") == "desc",
			},
		}
		page, err := api.Table(ctx.Context(), input)
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return ctx.JSON(http.StatusOK, page)
	}))

	r.Get(routes.Calendar, router.WrapHandler(func(ctx router.Context) error {
		collection := ctx.Param("collection")
		if collection == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("collection is required"))
		}
		input := queries.CalendarInput{
			Collection: collection,
			FieldKey:   ctx.Query("field"),
		}
		calendar, err := api.Calendar(ctx.Context(), input)
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return ctx.JSON(http.StatusOK, calendar)
	}))

	r.Get(routes.Board, router.WrapHandler(func(ctx router.Context) error {
		collection := ctx.Param("collection")
		if collection == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("collection is required"))
		}
		input := queries.BoardInput{
			Collection:  collection,
			StatusField: ctx.Query("status_field"),
		}
		columns, err := api.Board(ctx.Context(), input)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		return ctx.JSON(http.StatusOK, columns)
	}))

	r.Post(routes.BoardMove, router.WrapHandler(func(ctx router.Context) error {
		var payload board.MoveRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.MoveCard(ctx.Context(), payload); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, board.ErrRecordInFlight) {
				status = http.StatusConflict
			}
			return respondError(ctx, status, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "moved"})
	}))

	r.Post(routes.Records, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.UpdateRecordInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.UpdateRecord(ctx.Context(), payload); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, console.ErrUnauthorized) {
				status = http.StatusForbidden
			}
			return respondError(ctx, status, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Post(routes.Quota, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetQuotaInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.SetQuota(ctx.Context(), payload); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, console.ErrUnauthorized) {
				status = http.StatusForbidden
			}
			return respondError(ctx, status, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Features, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ToggleFeatureInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.ToggleFeature(ctx.Context(), payload); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, console.ErrUnauthorized) {
				status = http.StatusForbidden
			}
			return respondError(ctx, status, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *board.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) console.ViewerContext {
	var viewer console.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok {
		viewer.TenantID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/"
	}
	if routes.Overview == "" {
		routes.Overview = "/overview"
	}
	if routes.Analyze == "" {
		routes.Analyze = "/templates/analyze"
	}
	if routes.Table == "" {
		routes.Table = "/views/:collection/table"
	}
	if routes.Calendar == "" {
		routes.Calendar = "/views/:collection/calendar"
	}
	if routes.Board == "" {
		routes.Board = "/views/:collection/board"
	}
	if routes.BoardMove == "" {
		routes.BoardMove = "/board/move"
	}
	if routes.Records == "" {
		routes.Records = "/records/update"
	}
	if routes.Quota == "" {
		routes.Quota = "/quota"
	}
	if routes.Features == "" {
		routes.Features = "/features"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
