/*
Package resp builds HTTP responses declaratively and writes them later.

A Builder collects a status and headers, then one terminal call picks how the body is produced:

	resp.OK().Build()                                  // no body
	resp.Created(loc).Body(account)                    // a value, serialized by negotiation
	resp.OK().Stream(rows, stream.TypeOf[Row]())       // a stream of values
	resp.OK().Resource(codec.NewFSResource(fsys, fp))  // bytes from a file
	resp.OK().SSE(events)                              // a text/event-stream
	resp.OK().Render("home", view.NewModel(account))   // a named view

Nothing is serialized until the resulting *Response is written to an *exchange.Exchange.
The exchange supplies the codec.MessageWriters and view.Resolvers to use.

A Responder adapts HandlerFuncs returning a *Response into http.Handlers,
logging and reporting whatever goes wrong along the way.
*/
package resp
