/*
Package stream provides Publisher, a lazy, cancellable source of zero or more elements
followed by completion or failure.

A Publisher does nothing until Subscribe is called.
Subscribe blocks while the Publisher pushes each element into the provided callback,
returning once the sequence completes, fails, or the context.Context is done.
The callback returning an error stops the sequence and that error is returned by Subscribe;
pacing is left to the callback.
*/
package stream
