/*
Package exchange bundles everything about one HTTP request being answered:
the inbound *http.Request, the outbound ServerResponse,
and an attribute store collaborators are looked up from.

Two attributes matter to writing responses:

	MessageWritersAttribute -> func() iter.Seq[codec.MessageWriter]
	ViewResolversAttribute  -> func() iter.Seq[view.Resolver]

The packages owning those types expose typed helpers for setting and reading them.
*/
package exchange
