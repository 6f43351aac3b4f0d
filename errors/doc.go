/*
Package errors implements coded errors for the swap contract and the host
that runs it.

Every failure returned across a contract boundary should wrap one of the root
errors declared in this package. The root error carries a numeric code that
the host reports as the invocation status, while the wrapping layers carry
the human readable context.

If you want to register a custom error - use Register(code, description).
For reusing errors - use Errxxx.New and Errxxx.Newf.

Stack traces are attached on the first wrap. Create an error using
ErrXyz.New("...") or errors.Wrap(err, "...") at the point of failure, not as a
package level variable, or the recorded stack trace is useless.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
