package middleware

import (
	"fmt"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/trailhead/logger"
)

// Recover answers requests whose handler panicked with 500 Internal Server Error
// and logs the panic at the error level.
//
// If ls is nil, a default logger.Logger is used.
func Recover(ls logger.Logger) Adapter {
	if ls == nil {
		ls = logger.New()
	}

	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{ls}))
}

// recoveryLogger adapts a logger.Logger to handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	l logger.Logger
}

func (rl recoveryLogger) Println(v ...any) {
	rl.l.Error("recovered from panic: "+fmt.Sprint(v...), nil)
}
