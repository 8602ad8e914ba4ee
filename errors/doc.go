/*
Package errors implements the error kinds used across the wallet.

Every failure the wallet reports wraps exactly one root error registered with
Register(code, description). The code is unique for the whole process and is
what client tooling uses to tell "needs more signatures" apart from "malformed
request" or "not authorized".

Reuse the generic kinds declared here and register custom kinds in the
extension package when the distinction matters to a client. Create instances
with ErrXyz.New/Newf or Wrap(err, "...") at the point of failure so that a
stack trace is recorded once, at the innermost frame.

	%s  is just the error message
	%+v is the message followed by the stack trace
*/
package errors
