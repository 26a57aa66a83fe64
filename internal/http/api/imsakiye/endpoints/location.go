package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api/imsakiye/packets"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/location"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

type LocationController struct {
	flow *location.Flow
}

// LocationModule mounts the state and city pickers.
func LocationModule(flow *location.Flow) api.Module {
	ctl := &LocationController{flow: flow}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/states", ctl.states)
		c.GET("/states/:code/cities", ctl.cities)
		c.POST("/selection/city", ctl.selectCity)
	})
}

func pickerResponse(p location.Picker) packets.PickerResponse {
	opts := p.Options
	if opts == nil {
		opts = []location.Option{}
	}
	return packets.PickerResponse{Placeholder: p.Placeholder, Enabled: p.Enabled, Options: opts}
}

// GET /api/states
func (l *LocationController) states(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	picker, err := s.LoadStates(ctx.Request.Context(), l.flow)
	if err != nil {
		return nil, apiError(err)
	}
	return pickerResponse(picker), nil
}

// GET /api/states/:code/cities
func (l *LocationController) cities(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	picker, err := s.StateChange(ctx.Request.Context(), l.flow, ctx.Param("code"))
	if err != nil {
		apiErr := apiError(err)
		apiErr.Detail = pickerResponse(picker)
		return nil, apiErr
	}
	return pickerResponse(picker), nil
}

// POST /api/selection/city
func (l *LocationController) selectCity(ctx *gin.Context, s *session.Session) (any, *api.APIError) {
	var req packets.CityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, badRequest(err)
	}
	return packets.CityResponse{ContinueEnabled: s.CityChange(req.State, req.City)}, nil
}
