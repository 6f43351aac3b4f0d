/*
Package swap implements an atomic swap between a fungible token contract and
a non-fungible token contract.

What happens here is fungible tokens are being held in an escrow, which is the
swap contract itself. The opener names the token that the counterparty must
hand over and the trader that receives the locked tokens. Anyone holding that
token can close the swap. Closing moves the token to the opener and releases
the locked fungible tokens to the configured close trader. The opener can
cancel a swap that is still open.

The algorithm is as follows:
1. Opener approves the swap contract on the fungible token contract.
2. Opener opens a swap. The approved amount is moved into the escrow.
3. Closer approves the swap contract on the non-fungible token contract.
4. Closer closes the swap. The token is moved to the opener and the escrowed
amount to the close trader.
5. Alternatively, before step 4, the opener cancels the swap. Depending on the
configured cancel policy the escrowed amount is either retained by the
contract or refunded to the opener.

A swap is never deleted. Its state is kept next to the record and only moves
forward: NONE, OPEN, then either CLOSED or CANCELED.
*/
package swap
