package view

import (
	"context"
	"errors"
	"iter"
	"slices"

	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/media"
	"golang.org/x/text/language"
)

var ErrNotFound = errors.New("view not found")

// A View renders a Model onto an exchange.Exchange.
type View interface {
	// Render writes model to ex.Response.
	// A zero-value contentType leaves the choice to the View.
	Render(ctx context.Context, model Model, contentType media.MediaType, ex *exchange.Exchange) error
}

// A Resolver looks up Views by name.
type Resolver interface {
	// ResolveViewName returns the View for name in locale,
	// or nil and no error when it has no such View.
	ResolveViewName(ctx context.Context, name string, locale language.Tag) (View, error)
}

// A ResolverSupplier lazily produces the Resolvers available to an exchange.Exchange.
type ResolverSupplier func() iter.Seq[Resolver]

// SetResolvers installs resolvers on ex under exchange.ViewResolversAttribute.
func SetResolvers(ex *exchange.Exchange, resolvers ...Resolver) {
	ex.SetAttribute(exchange.ViewResolversAttribute, ResolverSupplier(func() iter.Seq[Resolver] {
		return slices.Values(resolvers)
	}))
}

// Resolvers looks up the Resolvers installed on ex.
// It reports false when ex has none or the attribute holds something unexpected.
func Resolvers(ex *exchange.Exchange) (iter.Seq[Resolver], bool) {
	val, ok := ex.Attribute(exchange.ViewResolversAttribute)
	if !ok {
		return nil, false
	}

	switch supplier := val.(type) {
	case ResolverSupplier:
		return supplier(), true
	case func() iter.Seq[Resolver]:
		return supplier(), true
	case []Resolver:
		return slices.Values(supplier), true
	default:
		return nil, false
	}
}
