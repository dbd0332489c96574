package bluetooth

import "strings"

// Address represents a Bluetooth address in 11:22:33:AA:BB:CC format.
// The address is kept exactly as it was typed or printed by the
// control daemon, so that its case survives into derived names.
type Address string

const (
	// AddressStringLength is the length of a Bluetooth address string (with ':').
	AddressStringLength = 17

	// NumAddressBytes is the total number of octets in a Bluetooth address.
	NumAddressBytes = 6
)

// ParseAddress parses the given Bluetooth address, which must be exactly six
// groups of two hexadecimal digits separated by colons.
func ParseAddress(s string) (Address, error) {
	if len(s) != AddressStringLength {
		return "", ErrInvalidAddress
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		// Every third character is a separator.
		if i%3 == 2 {
			if c != ':' {
				return "", ErrInvalidAddress
			}

			continue
		}

		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		case c >= 'a' && c <= 'f':
		default:
			return "", ErrInvalidAddress
		}
	}

	return Address(s), nil
}

// IsValidAddress reports whether s is a well-formed Bluetooth address.
func IsValidAddress(s string) bool {
	_, err := ParseAddress(s)

	return err == nil
}

// String returns the address as text.
func (a Address) String() string {
	return string(a)
}

// IsNil checks if the address is empty.
func (a Address) IsNil() bool {
	return a == ""
}

// Underscored returns the address with its separators replaced by
// underscores, as used in BlueZ object paths and sound server names.
func (a Address) Underscored() string {
	return strings.ReplaceAll(string(a), ":", "_")
}
