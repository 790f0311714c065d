package middleware

import (
	"net/http"
	"sync"

	"github.com/xy-planning-network/trailhead/http/resp"
)

// answerer supplies the *resp.Responder writing the responses middlewares answer with
// before a request reaches a handler.
// It logs any failure to write them and answers it with a 500 when nothing was sent yet.
var answerer = sync.OnceValue(func() *resp.Responder { return resp.NewResponder() })

func respond(w http.ResponseWriter, r *http.Request, res *resp.Response) {
	doer := answerer()
	doer.Respond(doer.Exchange(w, r), res)
}
