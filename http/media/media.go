// Package media describes media types and the rules for matching them against one another.
package media

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"

	"github.com/munnerz/goautoneg"
)

const wildcard = "*"

var ErrInvalid = errors.New("invalid media type")

var (
	All                    = MediaType{Type: wildcard, Subtype: wildcard}
	ApplicationJSON        = MediaType{Type: "application", Subtype: "json"}
	ApplicationOctetStream = MediaType{Type: "application", Subtype: "octet-stream"}
	TextEventStream        = MediaType{Type: "text", Subtype: "event-stream"}
	TextHTML               = MediaType{Type: "text", Subtype: "html"}
	TextPlain              = MediaType{Type: "text", Subtype: "plain"}
)

// A MediaType is a type/subtype pair plus optional parameters, e.g., text/plain; charset=utf-8.
//
// The zero-value MediaType stands in for "no media type".
type MediaType struct {
	Type    string
	Subtype string
	Params  map[string]string
}

// Parse parses s, such as a Content-Type header value, into a MediaType.
func Parse(s string) (MediaType, error) {
	full, params, err := mime.ParseMediaType(s)
	if err != nil {
		return MediaType{}, fmt.Errorf("%w: %q: %s", ErrInvalid, s, err)
	}

	typ, sub, ok := strings.Cut(full, "/")
	if !ok {
		if full != wildcard {
			return MediaType{}, fmt.Errorf("%w: %q has no subtype", ErrInvalid, s)
		}

		sub = wildcard
	}

	if typ == wildcard && sub != wildcard {
		return MediaType{}, fmt.Errorf("%w: %q has wildcard type but concrete subtype", ErrInvalid, s)
	}

	if len(params) == 0 {
		params = nil
	}

	return MediaType{Type: typ, Subtype: sub, Params: params}, nil
}

// MustParse is like Parse but panics if s cannot be parsed.
func MustParse(s string) MediaType {
	mt, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return mt
}

// ParseAccept parses the value of an Accept header into MediaTypes
// ordered by preference: quality first, specificity second.
// Media ranges with a quality of 0 are dropped.
//
// An empty header accepts anything.
func ParseAccept(header string) []MediaType {
	if strings.TrimSpace(header) == "" {
		return []MediaType{All}
	}

	accepted := goautoneg.ParseAccept(header)
	sort.SliceStable(accepted, func(i, j int) bool { return accepted[i].Q > accepted[j].Q })

	out := make([]MediaType, 0, len(accepted))
	for _, a := range accepted {
		if a.Q <= 0 || a.Type == "" || a.SubType == "" {
			continue
		}

		mt := MediaType{Type: strings.ToLower(a.Type), Subtype: strings.ToLower(a.SubType)}
		if len(a.Params) > 0 {
			mt.Params = a.Params
		}

		out = append(out, mt)
	}

	return out
}

// String formats m for use as a header value.
func (m MediaType) String() string {
	if m.IsZero() {
		return ""
	}

	return mime.FormatMediaType(m.Type+"/"+m.Subtype, m.Params)
}

// IsZero asserts whether m is the zero-value MediaType.
func (m MediaType) IsZero() bool { return m.Type == "" && m.Subtype == "" }

func (m MediaType) IsWildcardType() bool    { return m.Type == wildcard }
func (m MediaType) IsWildcardSubtype() bool { return m.Subtype == wildcard || strings.HasPrefix(m.Subtype, "*+") }

// IsConcrete asserts m names neither a wildcard type nor a wildcard subtype.
func (m MediaType) IsConcrete() bool { return !m.IsZero() && !m.IsWildcardType() && !m.IsWildcardSubtype() }

// Param retrieves the named parameter, ignoring case in name.
func (m MediaType) Param(name string) string {
	for k, v := range m.Params {
		if strings.EqualFold(k, name) {
			return v
		}
	}

	return ""
}

// WithoutParams copies m, dropping its parameters.
func (m MediaType) WithoutParams() MediaType {
	return MediaType{Type: m.Type, Subtype: m.Subtype}
}

// Equal asserts m and other have the same type, subtype and parameters.
// Types and subtypes compare case-insensitively.
func (m MediaType) Equal(other MediaType) bool {
	if !m.sameEssence(other) || len(m.Params) != len(other.Params) {
		return false
	}

	for k, v := range m.Params {
		if other.Param(k) != v {
			return false
		}
	}

	return true
}

// Includes asserts m, as a range, covers other.
// e.g., text/* includes text/plain, but text/plain does not include text/*.
// Parameters are ignored.
func (m MediaType) Includes(other MediaType) bool {
	if m.IsZero() || other.IsZero() {
		return false
	}

	if m.IsWildcardType() {
		return true
	}

	if !strings.EqualFold(m.Type, other.Type) {
		return false
	}

	if strings.EqualFold(m.Subtype, other.Subtype) || m.Subtype == wildcard {
		return true
	}

	// NOTE: */*+json style suffixes; application/*+json includes application/vnd.api+json.
	if suffix, ok := strings.CutPrefix(m.Subtype, "*+"); ok {
		_, otherSuffix, found := strings.Cut(other.Subtype, "+")
		return found && strings.EqualFold(suffix, otherSuffix)
	}

	return false
}

// IsCompatibleWith asserts either of m or other includes the other.
func (m MediaType) IsCompatibleWith(other MediaType) bool {
	return m.Includes(other) || other.Includes(m)
}

// MostSpecific returns whichever of a or b is the narrower media type.
// When both are equally specific, a wins, except that parameters from b fill in missing ones.
func MostSpecific(a, b MediaType) MediaType {
	switch {
	case a.IsWildcardType() && !b.IsWildcardType():
		return b
	case a.IsWildcardSubtype() && !b.IsWildcardSubtype():
		return b
	case len(a.Params) == 0 && len(b.Params) > 0 && a.sameEssence(b):
		return b
	default:
		return a
	}
}

func (m MediaType) sameEssence(other MediaType) bool {
	return strings.EqualFold(m.Type, other.Type) && strings.EqualFold(m.Subtype, other.Subtype)
}
