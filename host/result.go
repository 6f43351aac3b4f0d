package host

import (
	"fmt"

	"github.com/iov-one/tokenswap/errors"
)

// Result is the outcome of an invocation as seen by an external client.
type Result struct {
	// Code is zero for success, otherwise the code of the root error.
	Code uint32
	// Log is the error message, empty on success.
	Log string
	// Data is the payload returned by the contract.
	Data []byte
}

// NewResult builds a result out of a contract return. Messages of errors
// without a registered code are redacted unless debug is set.
func NewResult(data []byte, err error, debug bool) Result {
	code, log := errors.CodeInfo(err, debug)
	if code != errors.SuccessCode {
		data = nil
	}
	return Result{Code: code, Log: log, Data: data}
}

// IsOK returns true if the invocation succeeded.
func (r Result) IsOK() bool {
	return r.Code == errors.SuccessCode
}

// Err converts a failed result back into an error carrying the root error of
// its code.
func (r Result) Err() error {
	if r.IsOK() {
		return nil
	}
	root := errors.FromCode(r.Code)
	if root == nil {
		return fmt.Errorf("code %d: %s", r.Code, r.Log)
	}
	return errors.Wrap(root, r.Log)
}
