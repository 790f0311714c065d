package middleware

import "github.com/xy-planning-network/trailhead/http/resp"

var Respond = respond

// SetAnswerer swaps the package's answerer for doer, returning a func restoring it.
func SetAnswerer(doer *resp.Responder) func() {
	prev := answerer
	answerer = func() *resp.Responder { return doer }
	return func() { answerer = prev }
}
