/*
Error model definition and default error types for the rest pipeline.

This package defines two main objects for handling errors:

• RestErrorType defines an error type.

• RestError is an instance of an error which contains a RestErrorType.

# Default RestErrorType Variables

Pointers to the pipeline's RestErrorType definitions are included in this package;
codes 2000-2999 are reserved for them. Each carries the HTTP status the surrounding
error translation should respond with, with -1 flagging types whose status is
determined dynamically.
*/
package resterrors
