package tokenswap

import "context"

// Caller invokes a method exposed by another contract. The call is synchronous
// and returns only after the target method and all calls it made have
// finished. The sender seen by the target contract is the address of the
// contract that is currently executing.
type Caller interface {
	CallContract(ctx context.Context, target Address, method string, args Args) ([]byte, error)
}

// Contract is implemented by any code that the host can execute. A contract
// is given the store namespaced to its own address.
type Contract interface {
	Call(ctx context.Context, db KVStore, method string, args Args) ([]byte, error)
}

// Marshaller is anything that can be represented in binary
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Validater is any struct that can be validated.
type Validater interface {
	Validate() error
}
