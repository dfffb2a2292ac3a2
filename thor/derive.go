// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// derivationDomain separates derived addresses from any other keccak preimage.
var derivationDomain = []byte("thor-staking-derived-address")

func derivedDigest(seed string, nonce uint8, parts ...[]byte) Bytes32 {
	data := make([][]byte, 0, len(parts)+3)
	data = append(data, []byte(seed))
	data = append(data, parts...)
	data = append(data, []byte{nonce}, derivationDomain)
	return Keccak256(data...)
}

// DerivedAddress computes the address derived from seed, parts and nonce.
// The second return value reports whether the nonce yields a valid derived address,
// i.e. one no private key can control.
func DerivedAddress(seed string, nonce uint8, parts ...[]byte) (Address, bool) {
	digest := derivedDigest(seed, nonce, parts...)
	if digest[0]&0x80 != 0 {
		return Address{}, false
	}
	return BytesToAddress(digest[12:]), true
}

// FindDerivedAddress searches the canonical nonce, from 255 downwards, and returns the
// first valid derived address together with the nonce.
func FindDerivedAddress(seed string, parts ...[]byte) (Address, uint8) {
	for nonce := 255; nonce >= 0; nonce-- {
		if addr, ok := DerivedAddress(seed, uint8(nonce), parts...); ok {
			return addr, uint8(nonce)
		}
	}
	// each nonce fails with probability 1/2, exhausting all of them is not expected.
	panic("unable to find a valid derived address")
}
