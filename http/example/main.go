/*
Package main provides a toy example use of trailhead's http stack.

Try:

	curl localhost:8080/
	curl -H 'Accept: application/json' localhost:8080/trails
	curl -H 'Idempotency-Key: 1' -d 'name=ridge&miles=4' localhost:8080/trails
	curl localhost:8080/trails/stream
	curl -N localhost:8080/ticks
	curl -O localhost:8080/trails.csv
*/
package main

import (
	"bytes"
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/codec"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/req"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/http/template"
	"github.com/xy-planning-network/trailhead/http/view"
	"github.com/xy-planning-network/trailhead/ranger"
	"github.com/xy-planning-network/trailhead/stream"
)

//go:embed tmpl/*.tmpl
var files embed.FS

type trail struct {
	Name  string `json:"name" schema:"name" validate:"required"`
	Miles int    `json:"miles" schema:"miles" validate:"gt=0"`
}

type trails struct {
	mu      sync.RWMutex
	all     []trail
	updated time.Time
}

func (ts *trails) list() ([]trail, time.Time) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return append([]trail(nil), ts.all...), ts.updated
}

func (ts *trails) add(t trail) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.all = append(ts.all, t)
	ts.updated = time.Now().UTC()
	return len(ts.all)
}

type handler struct {
	parser *req.Parser
	trails *trails
}

// home renders the home view.
func (h *handler) home(r *http.Request) (*resp.Response, error) {
	all, _ := h.trails.list()
	return resp.OK().
		CacheControl(resp.NoCache()).
		Render("home", view.Model{"title": "Trails", "trails": all}), nil
}

// index answers with whatever representation of the trails the client accepts.
func (h *handler) index(r *http.Request) (*resp.Response, error) {
	all, updated := h.trails.list()
	return resp.OK().
		ETag(strconv.FormatInt(updated.UnixNano(), 36)).
		LastModified(updated).
		CacheControl(resp.MaxAge(time.Minute).Private()).
		VaryBy("Accept").
		Body(all), nil
}

// create records a trail from a JSON or form body.
func (h *handler) create(r *http.Request) (*resp.Response, error) {
	var t trail
	if err := h.parser.ParseRequest(r, &t); err != nil {
		return req.Reply(err)
	}

	id := h.trails.add(t)
	return resp.Created(&url.URL{Path: "/trails/" + strconv.Itoa(id)}).Body(t), nil
}

// stream publishes each trail one at a time.
func (h *handler) stream(r *http.Request) (*resp.Response, error) {
	all, _ := h.trails.list()
	vals := make([]any, len(all))
	for i := range all {
		vals[i] = all[i]
	}

	return resp.OK().Stream(stream.Just(vals...), stream.TypeOf[trail]()), nil
}

// ticks sends a server-sent event every second until the client leaves or five have been sent.
func (h *handler) ticks(r *http.Request) (*resp.Response, error) {
	events := stream.PublisherFunc(func(ctx context.Context, next func(any) error) error {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()

		for i := 1; i <= 5; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case t := <-tick.C:
				evt := codec.ServerSentEvent{ID: strconv.Itoa(i), Event: "tick", Data: t.Format(time.RFC3339)}
				if err := next(evt); err != nil {
					return err
				}
			}
		}

		return nil
	})

	return resp.OK().SSE(events), nil
}

// download offers the trails as a CSV file.
func (h *handler) download(r *http.Request) (*resp.Response, error) {
	all, updated := h.trails.list()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"name", "miles"})
	for _, t := range all {
		w.Write([]string{t.Name, strconv.Itoa(t.Miles)})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return resp.OK().
		LastModified(updated).
		Header("Content-Disposition", `attachment; filename="trails.csv"`).
		Resource(codec.NewBytesResource("trails.csv", buf.Bytes())), nil
}

func main() {
	cfg, err := trailhead.LoadConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	tmpls, err := fs.Sub(files, "tmpl")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	p := template.NewParser(template.WithFS(tmpls), template.WithFn(template.Env(cfg.Env)))
	rng, err := ranger.New(cfg, ranger.WithParser(p))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	h := &handler{
		parser: req.NewParser(),
		trails: &trails{all: []trail{{"Ridge Loop", 4}, {"Creek Walk", 2}}, updated: time.Now().UTC()},
	}

	rng.HandleRoutes([]router.Route{
		{Path: "/", Method: http.MethodGet, Handler: h.home},
		{Path: "/trails", Method: http.MethodGet, Handler: h.index},
		{Path: "/trails", Method: http.MethodPost, Handler: h.create, Middlewares: []middleware.Adapter{middleware.Idempotent(nil)}},
		{Path: "/trails/stream", Method: http.MethodGet, Handler: h.stream},
		{Path: "/trails.csv", Method: http.MethodGet, Handler: h.download},
		{Path: "/ticks", Method: http.MethodGet, Handler: h.ticks},
	})

	rng.HandleNotFound(func(r *http.Request) (*resp.Response, error) {
		return resp.NotFound().Body("Oops no " + r.URL.Path), nil
	})

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Error(err.Error(), nil)
		os.Exit(1)
	}
}
