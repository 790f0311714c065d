package resp

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// A CacheControl builds the value of a Cache-Control header.
// Each method returns a new CacheControl, leaving the receiver untouched.
type CacheControl struct {
	directives []string
}

// Empty returns a CacheControl without directives.
func Empty() CacheControl { return CacheControl{} }

// NoCache returns a CacheControl with the no-cache directive.
func NoCache() CacheControl { return Empty().with("no-cache") }

// NoStore returns a CacheControl with the no-store directive.
func NoStore() CacheControl { return Empty().with("no-store") }

// MaxAge returns a CacheControl with the max-age directive set to d, in whole seconds.
func MaxAge(d time.Duration) CacheControl { return Empty().with(seconds("max-age", d)) }

func (cc CacheControl) MustRevalidate() CacheControl  { return cc.with("must-revalidate") }
func (cc CacheControl) NoTransform() CacheControl     { return cc.with("no-transform") }
func (cc CacheControl) Public() CacheControl          { return cc.with("public") }
func (cc CacheControl) Private() CacheControl         { return cc.with("private") }
func (cc CacheControl) ProxyRevalidate() CacheControl { return cc.with("proxy-revalidate") }
func (cc CacheControl) Immutable() CacheControl       { return cc.with("immutable") }

func (cc CacheControl) SMaxAge(d time.Duration) CacheControl {
	return cc.with(seconds("s-maxage", d))
}

func (cc CacheControl) StaleIfError(d time.Duration) CacheControl {
	return cc.with(seconds("stale-if-error", d))
}

func (cc CacheControl) StaleWhileRevalidate(d time.Duration) CacheControl {
	return cc.with(seconds("stale-while-revalidate", d))
}

// IsZero asserts cc has no directives.
func (cc CacheControl) IsZero() bool { return len(cc.directives) == 0 }

// String renders cc as a header value, e.g., "max-age=60, public".
func (cc CacheControl) String() string { return strings.Join(cc.directives, ", ") }

// with appends directive, replacing any directive of the same name.
func (cc CacheControl) with(directive string) CacheControl {
	name, _, _ := strings.Cut(directive, "=")
	out := slices.DeleteFunc(slices.Clone(cc.directives), func(d string) bool {
		n, _, _ := strings.Cut(d, "=")
		return n == name
	})

	return CacheControl{directives: append(out, directive)}
}

func seconds(name string, d time.Duration) string {
	return fmt.Sprintf("%s=%d", name, int64(d/time.Second))
}
