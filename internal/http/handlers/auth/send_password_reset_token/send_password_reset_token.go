package sendpasswordresettoken

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "userable/internal/core/domain/common"
	ratelimiter "userable/internal/core/domain/rate_limiter"
	"userable/internal/core/services"
	sendpasswordresettoken "userable/internal/core/services/send_password_reset_token"
	"userable/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
}

func New(
	service services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result],
) *Handler {
	return &Handler{service: service}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
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
		sendpasswordresettoken.Input{Email: c.NewEmail(input.Email)},
	)
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	// Unknown emails get the same response, the endpoint must not
	// reveal whether an account exists.
	response.Render(rw, struct{}{}, http.StatusOK)
}
