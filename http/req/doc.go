/*
Package req parses the payloads of HTTP requests into structs.

JSON bodies, urlencoded forms and query params are all decoded into a pointer to a struct,
matching keys by "json" or "schema" struct tags, and then validated by "validate" struct tags.
A "validate:\"enum\"" tag checks a trailhead.Enumerable field.

Errors come back as a *resp.StatusError a resp.HandlerFunc can return as is:
a payload breaking validation rules is a 422 wrapping FieldErrors,
a malformed payload is a 400 and a mistake in calling code is a 500.
Reply turns FieldErrors into a 422 response listing them:

	var t trail
	if err := parser.ParseRequest(r, &t); err != nil {
		return req.Reply(err)
	}
*/
package req
