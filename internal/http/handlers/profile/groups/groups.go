package groups

import (
	"errors"
	"net/http"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
	service "userable/internal/core/services/list_user_groups"
	"userable/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Groups []response.Group `json:"groups"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	groups := make([]response.Group, len(result.Groups))
	for ix, g := range result.Groups {
		groups[ix].FromDomainGroup(g)
	}
	response.Render(rw, Result{Groups: groups}, http.StatusOK)
}
