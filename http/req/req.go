package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/media"
)

var (
	formURLEncoded = media.MediaType{Type: "application", Subtype: "x-www-form-urlencoded"}
	jsonSuffixed   = media.MustParse("application/*+json")
)

// A Parser decodes payloads of HTTP requests into structs and validates them.
//
// Every error a Parser returns is a *resp.StatusError,
// so a resp.HandlerFunc may return it as is or pass it to Reply.
type Parser struct {
	values valuesDecoder
	validator
}

// NewParser constructs a *Parser with the default decoding and validation configuration.
func NewParser() *Parser {
	return &Parser{values: newValuesDecoder(), validator: newValidator()}
}

// ParseBody decodes the JSON in body into structPtr and validates it.
//
// ParseBody reads all of body.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	switch {
	case errors.As(err, &ourFault):
		return fail(fmt.Errorf("%w: %s", trailhead.ErrBadAny, err))
	case err != nil:
		return fail(fmt.Errorf("%w: cannot decode body: %s", trailhead.ErrBadFormat, err))
	}

	return p.check(structPtr)
}

// ParseQueryParams decodes params into structPtr and validates it.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.values.decode(structPtr, params); err != nil {
		return fail(err)
	}

	return p.check(structPtr)
}

// ParseRequest decodes the payload of r into structPtr according to r's method and Content-Type:
//   - GET, HEAD and DELETE requests carry their payload in query params
//   - "application/json", or any "+json" type, is parsed with ParseBody
//   - "application/x-www-form-urlencoded" is parsed like query params
//
// Other Content-Types are answered with 400 Bad Request.
func (p *Parser) ParseRequest(r *http.Request, structPtr any) error {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return p.ParseQueryParams(r.URL.Query(), structPtr)
	}

	mt, err := media.Parse(r.Header.Get("Content-Type"))
	if err != nil {
		return fail(fmt.Errorf("%w: unreadable Content-Type: %s", trailhead.ErrBadFormat, err))
	}

	switch {
	case mt.Subtype == "json" || jsonSuffixed.Includes(mt):
		return p.ParseBody(r.Body, structPtr)

	case formURLEncoded.Includes(mt):
		if err := r.ParseForm(); err != nil {
			return fail(fmt.Errorf("%w: cannot parse form: %s", trailhead.ErrBadFormat, err))
		}

		return p.ParseQueryParams(r.PostForm, structPtr)

	default:
		return fail(fmt.Errorf("%w: cannot parse %s", trailhead.ErrBadFormat, mt))
	}
}

func (p *Parser) check(structPtr any) error {
	if err := p.validate(structPtr); err != nil {
		return fail(err)
	}

	return nil
}
