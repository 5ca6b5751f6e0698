// Arbitrarily encode and decode message body content.
/*
The encoding package provides a single interface specification for any given content
type, so that a wire format can be determined dynamically from message headers (or
mimetype sniffing) and handlers never have to call format-specific methods when
reading or writing content.

Specific objectives

1. Clients can send arbitrary object serializations and request back whichever
encoding type they are most comfortable with.

2. Service developers do not have to explicitly add support for encoding types to a
given handler. Support for a mimetype is added once, to a TypeMap, and every action
that shares the configuration gets it for free.

3. Serializers come in three kinds behind one capability interface: native format
libraries, encode-only view delegation (ViewSerializer), and caller-supplied
functions (CallbackSerializer).

4. Developers can extend their services to support a new content type by creating
their own encoders.
*/
package encoding
