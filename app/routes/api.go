package routes

import (
	"github.com/shashiranjanraj/helmet-store/app/controllers"
	"github.com/shashiranjanraj/helmet-store/pkg/ctx"
	"github.com/shashiranjanraj/helmet-store/pkg/metrics"
	"github.com/shashiranjanraj/helmet-store/pkg/router"
)

// Mount is one backend's helmet API: the prefix it lives under and the
// name prefix of its routes.
type Mount struct {
	Prefix     string // e.g. /api/v1/helmet
	Name       string // e.g. helmet.v1
	Controller *controllers.HelmetController
}

// RegisterAPI mounts every helmet API plus the operational endpoints.
func RegisterAPI(r *router.Router, health *controllers.HealthController, mounts ...Mount) {
	for _, m := range mounts {
		RegisterHelmet(r.Group(m.Prefix), m.Name, m.Controller)
	}

	r.Get("/healthz", "healthz", ctx.Wrap(health.Check))
	r.Get("/metrics", "metrics", metrics.Handler())
}

// RegisterHelmet is the one route table shared by every backend.
func RegisterHelmet(g *router.Group, name string, c *controllers.HelmetController) {
	g.Get("/", name+".list", ctx.Wrap(c.List))
	g.Get("/type", name+".types", ctx.Wrap(c.Types))
	g.Post("/add_helmet", name+".add", ctx.Wrap(c.Add))
	g.Put("/edit_helmet/{id}", name+".edit", ctx.Wrap(c.Edit))
	g.Delete("/delete/{id}", name+".delete", ctx.Wrap(c.Delete))
}
