package ranger

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/http/template"
	"github.com/xy-planning-network/trailhead/logger"
)

// A RangerOption configures a *Ranger under construction,
// returning an error if unable to.
type RangerOption func(rng *Ranger) error

// WithLogger exposes the provided logger.Logger to the trailhead app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}

		rng.l = l
		l.Debug(fmt.Sprintf("using logger %T", l), nil)
		return nil
	}
}

// WithParser sets the template.Parser views are read with,
// in place of one reading from Config.TemplateDir.
func WithParser(p template.Parser) RangerOption {
	return func(rng *Ranger) error {
		if p == nil {
			return errors.New("parser cannot be nil")
		}

		rng.parser = p
		return nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the trailhead app.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) error {
		if store == nil {
			return errors.New("session store cannot be nil")
		}

		rng.sessions = store
		return nil
	}
}

// WithServer sets the *http.Server Guide runs.
// Its Handler is replaced by the Ranger's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}

		rng.srv = s
		return nil
	}
}
