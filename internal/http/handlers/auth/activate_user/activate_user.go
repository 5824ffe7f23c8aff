package activateuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"userable/internal/core/domain/token"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
	activateuser "userable/internal/core/services/activate_user"
	"userable/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[activateuser.Input, activateuser.Result]
}

func New(
	service services.Service[activateuser.Input, activateuser.Result],
) *Handler {
	return &Handler{service: service}
}

type Input struct {
	ActivationCode string `json:"activation_code"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ActivationCode, validation.Required, validation.Length(1, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		activateuser.Input{Code: token.Code(input.ActivationCode)},
	)
	if errors.Is(err, token.ErrTokenDoesNotExist) {
		response.RenderError(rw, "activation code does not exist", http.StatusNotFound)
		return
	}
	if errors.Is(err, token.ErrTokenExpired) {
		response.RenderError(rw, "activation code is expired", http.StatusGone)
		return
	}
	if errors.Is(err, user.ErrUserAlreadyActive) {
		response.RenderError(rw, "user is already active", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
