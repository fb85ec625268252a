package controllers

import (
	"github.com/shashiranjanraj/helmet-store/app/services"
	"github.com/shashiranjanraj/helmet-store/pkg/ctx"
)

// HelmetController serves the five helmet endpoints for one backend.
type HelmetController struct {
	service *services.HelmetService
}

func NewHelmetController(service *services.HelmetService) *HelmetController {
	return &HelmetController{service: service}
}

// List handles GET /.
func (h *HelmetController) List(c *ctx.Context) {
	render(c, h.service.List(c.Context()))
}

// Types handles GET /type.
func (h *HelmetController) Types(c *ctx.Context) {
	render(c, h.service.ListTypes(c.Context()))
}

// Add handles POST /add_helmet.
func (h *HelmetController) Add(c *ctx.Context) {
	var in services.AddHelmetInput
	if err := c.BindJSON(&in); err != nil {
		render(c, h.service.Reject(c.Context(), services.UseCaseAddHelmet, err))
		return
	}
	render(c, h.service.Add(c.Context(), in))
}

// Edit handles PUT /edit_helmet/{id}.
func (h *HelmetController) Edit(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		render(c, h.service.Reject(c.Context(), services.UseCaseEditHelmet, err))
		return
	}

	var in services.EditHelmetInput
	if err := c.BindJSON(&in); err != nil {
		render(c, h.service.Reject(c.Context(), services.UseCaseEditHelmet, err))
		return
	}
	render(c, h.service.Edit(c.Context(), id, in))
}

// Delete handles DELETE /delete/{id}.
func (h *HelmetController) Delete(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		render(c, h.service.Reject(c.Context(), services.UseCaseDeleteHelmet, err))
		return
	}
	render(c, h.service.Delete(c.Context(), id))
}

// render maps an outcome to 200, 404, 400 or 500.
func render(c *ctx.Context, out services.Outcome) {
	switch out.Kind {
	case services.OutcomeSuccess:
		c.Success(out.Payload)
	case services.OutcomeNotFound:
		c.NotFound(out.Message)
	case services.OutcomeValidationFailed:
		c.BadRequest(out.Message, out.Fields)
	default:
		c.InternalError()
	}
}
