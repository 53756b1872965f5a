// Package router mounts per-domain route groups under the versioned API
// prefix and keeps a listing of them for /system/info.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts its routes on the versioned API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouteInfo is one mounted endpoint as reported by /system/info.
type RouteInfo struct {
	Domain string `json:"domain"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Router collects registrars and mounts them on Setup.
type Router struct {
	engine     *gin.Engine
	version    string
	middleware []gin.HandlerFunc
	groups     []RouteRegistrar
}

type RouterOption func(*Router)

// WithAPIVersion replaces the default "v1" path segment.
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.version = version }
}

// WithMiddleware applies mw to versioned routes only; anything mounted
// directly on the engine, like /health, does not see it.
func WithMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) { r.middleware = append(r.middleware, mw...) }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues g for Setup. Calls chain.
func (r *Router) Register(g RouteRegistrar) *Router {
	r.groups = append(r.groups, g)
	return r
}

// BasePath is the versioned prefix, e.g. /api/v1
func (r *Router) BasePath() string {
	return path.Join("/api", r.version)
}

// Setup mounts every registered group on the engine.
func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath(), r.middleware...)
	for _, g := range r.groups {
		g.RegisterRoutes(api)
	}
}

// Routes lists the endpoints of every registered DomainGroup in
// registration order.
func (r *Router) Routes() []RouteInfo {
	var infos []RouteInfo
	for _, g := range r.groups {
		if dg, ok := g.(*DomainGroup); ok {
			infos = dg.appendInfos(infos, r.BasePath())
		}
	}
	return infos
}

// DomainGroup is a named prefix with its own routes, middleware and
// nested groups.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	endpoints  []endpoint
	children   []*DomainGroup
}

type endpoint struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

// Use adds middleware that runs for this group and its children.
func (dg *DomainGroup) Use(mw ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, mw...)
	return dg
}

func (dg *DomainGroup) GET(relative string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, relative, handlers)
}

func (dg *DomainGroup) POST(relative string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, relative, handlers)
}

func (dg *DomainGroup) add(method, relative string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.endpoints = append(dg.endpoints, endpoint{method: method, path: relative, handlers: handlers})
	return dg
}

// Group nests a child group under this one and returns the child.
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	child := NewDomainGroup(name, prefix)
	dg.children = append(dg.children, child)
	return child
}

// RegisterRoutes mounts the group, then its children, under rg.
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group(dg.prefix, dg.middleware...)
	for _, e := range dg.endpoints {
		g.Handle(e.method, e.path, e.handlers...)
	}
	for _, child := range dg.children {
		child.RegisterRoutes(g)
	}
}

func (dg *DomainGroup) appendInfos(infos []RouteInfo, base string) []RouteInfo {
	prefix := path.Join(base, dg.prefix)
	for _, e := range dg.endpoints {
		full := prefix
		// gin keeps the prefix untouched for an empty relative path
		if e.path != "" {
			full = path.Join(prefix, e.path)
		}
		infos = append(infos, RouteInfo{Domain: dg.name, Method: e.method, Path: full})
	}
	for _, child := range dg.children {
		infos = child.appendInfos(infos, prefix)
	}
	return infos
}
