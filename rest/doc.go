// Content-negotiating request pipeline and status helpers.
/*
The rest package ties the encoding engine to net/http. A Controller owns one
immutable ControllerConfig (stash key, default content type, serializer TypeMap,
deserialize method set) built once at setup. Actions created from the controller
dispatch requests to handlers registered per HTTP method, with 200-OPTIONS and 405
fallbacks that report an Allow header of implemented methods.

Request flow:

1. The deserialize stage decodes the request body for body-carrying methods, using
the serializer registered for the request's Content-Type, and stores the result on
the request-scoped Context.

2. The matched handler runs and calls one of the status helpers (OK, Created,
BadRequest, ...) which set the response status, optionally a Location header, and
stage exactly one entity in the context stash.

3. The serialize stage re-resolves the wire format from Content-Type header, query
parameter, or Accept ranking -- the response format may legitimately differ from the
request's -- encodes the staged entity and writes it out.

Failures map to HTTP statuses through the resterrors types: no usable serializer is
a 415, serializer failures are a 500, missing methods are a 405. Status helper
argument violations are programming errors and panic instead.
*/
package rest
