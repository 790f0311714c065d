package req

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/resp"
)

// A FieldError reports a request field whose value breaks the rule set on it.
type FieldError struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Rule  string `json:"rule"`
}

// FieldErrors are every FieldError found parsing one request.
// They unwrap to trailhead.ErrNotValid.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Field + ": " + e.Rule
	}

	return strings.Join(msgs, "; ")
}

func (FieldErrors) Unwrap() error { return trailhead.ErrNotValid }

// Fields groups the broken rules by field, e.g., for rendering next to form inputs.
func (fe FieldErrors) Fields() map[string][]string {
	out := make(map[string][]string, len(fe))
	for _, e := range fe {
		out[e.Field] = append(out[e.Field], e.Rule)
	}

	return out
}

func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	errs := []FieldError(fe)
	if errs == nil {
		errs = make([]FieldError, 0)
	}

	return json.Marshal(struct {
		Errors []FieldError `json:"errors"`
	}{errs})
}

// fail pairs err with the status a resp.Responder answers it with:
// 422 for a trailhead.ErrNotValid, 400 for a trailhead.ErrBadFormat
// and 500 for anything else, as those are mistakes in calling code.
func fail(err error) error {
	switch {
	case errors.Is(err, trailhead.ErrNotValid):
		return resp.NewStatusError(resp.StatusUnprocessableEntity, err)
	case errors.Is(err, trailhead.ErrBadFormat):
		return resp.NewStatusError(resp.StatusBadRequest, err)
	default:
		return resp.NewStatusError(resp.StatusInternalServerError, err)
	}
}

// Reply answers a request whose payload a Parser rejected.
//
// FieldErrors become a 422 Unprocessable Entity whose body lists them.
// Other errors are handed back for the resp.Responder to answer with their status.
func Reply(err error) (*resp.Response, error) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return resp.UnprocessableEntity().Body(fe), nil
	}

	return nil, err
}
