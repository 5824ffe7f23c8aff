package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"userable/internal/core/domain/token"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
	resetpassword "userable/internal/core/services/reset_password"
	"userable/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	return &Handler{service: service}
}

type Input struct {
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Code, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(6, 256)),
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
		resetpassword.Input{
			Code:        token.Code(input.Code),
			NewPassword: user.RawPassword(input.NewPassword),
		},
	)
	if errors.Is(err, token.ErrTokenDoesNotExist) {
		response.RenderError(rw, "password reset code does not exist", http.StatusNotFound)
		return
	}
	if errors.Is(err, token.ErrTokenExpired) {
		response.RenderError(rw, "password reset code is expired", http.StatusGone)
		return
	}
	if errors.Is(err, user.ErrPasswordIsEmpty) {
		response.RenderError(rw, "password must not be empty", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
