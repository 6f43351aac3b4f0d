package tokenswap

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

type contextKey int // local to the tokenswap module

const (
	contextKeySender contextKey = iota
	contextKeyContract
	contextKeyLogger
)

// WithSender sets the address of the caller of the currently executing
// contract. Nested calls overwrite it with the calling contract address.
func WithSender(ctx context.Context, sender Address) context.Context {
	return context.WithValue(ctx, contextKeySender, sender)
}

// GetSender returns the caller of the currently executing contract.
func GetSender(ctx context.Context) (Address, bool) {
	val, ok := ctx.Value(contextKeySender).(Address)
	return val, ok
}

// WithContractAddress sets the address of the currently executing contract.
func WithContractAddress(ctx context.Context, addr Address) context.Context {
	return context.WithValue(ctx, contextKeyContract, addr)
}

// GetContractAddress returns the address of the currently executing contract.
func GetContractAddress(ctx context.Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyContract).(Address)
	return val, ok
}

// WithLogger sets the logger for this context
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
