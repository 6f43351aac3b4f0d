/*
Package tokenswap defines the common interfaces used to run the token swap
contract, as well as implementations of some of the simpler components
(when interfaces would be too much overhead).

Contracts are invoked by a host. The host resolves who is calling, which
contract is executing and which logger to use, and passes this information
through context.Context. For every value XYZ of type T carried in the context
there are two functions:

  WithXYZ(context.Context, T) context.Context
  GetXYZ(context.Context) (val T, ok bool)

Contracts never talk to other contracts directly. They use a Caller, which is
the gateway provided by the host to synchronously invoke a named method on a
contract identified by its Address.

Contract state is kept in a KVStore. The host namespaces the store per
contract and wraps every invocation so that all writes are either committed
together or discarded.
*/
package tokenswap
