// Package server exposes the voucher portal over HTTP with gin.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Route is the information for every URI.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	VoucherAPI VoucherAPI
	CatalogAPI CatalogAPI
	StaffAPI   StaffAPI
}

// RouterOptions configure the middleware stack of NewRouter.
type RouterOptions struct {
	// ServiceName enables otelgin tracing when set.
	ServiceName string
	Logger      *slog.Logger
}

// NewRouter returns a gin engine with recovery, request ids, access logs and
// optional tracing in front of every route.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	if opts.Logger != nil {
		router.Use(AccessLog(opts.Logger))
	}
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"ListModules", http.MethodGet, "/api/v1/catalog/modules", handleFunctions.CatalogAPI.ListModules},
		{"CreateQuote", http.MethodPost, "/api/v1/quotes", handleFunctions.CatalogAPI.CreateQuote},
		{"ListRequests", http.MethodGet, "/api/v1/requests", handleFunctions.VoucherAPI.ListRequests},
		{"CreateRequest", http.MethodPost, "/api/v1/requests", handleFunctions.VoucherAPI.CreateRequest},
		{"GetStats", http.MethodGet, "/api/v1/requests/stats", handleFunctions.VoucherAPI.GetStats},
		{"GetRequest", http.MethodGet, "/api/v1/requests/:requestId", handleFunctions.VoucherAPI.GetRequest},
		{"UpdateRequestStatus", http.MethodPut, "/api/v1/requests/:requestId/status", handleFunctions.VoucherAPI.UpdateStatus},
		{"Login", http.MethodPost, "/api/v1/staff/login", handleFunctions.StaffAPI.Login},
	}
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
