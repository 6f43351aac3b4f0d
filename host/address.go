package host

import (
	"github.com/iov-one/tokenswap"
	"golang.org/x/crypto/sha3"
)

// ContractAddress derives the address of a contract deployed by deployer
// under given name. It is the last 20 bytes of keccak256(deployer || name).
func ContractAddress(deployer tokenswap.Address, name string) tokenswap.Address {
	h := sha3.NewLegacyKeccak256()
	h.Write(deployer[:])
	h.Write([]byte(name))
	sum := h.Sum(nil)

	var addr tokenswap.Address
	copy(addr[:], sum[len(sum)-tokenswap.AddressLength:])
	return addr
}
