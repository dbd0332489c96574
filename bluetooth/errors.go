package bluetooth

import "errors"

// The different error types for device handling.
var (
	ErrInvalidAddress = errors.New("invalid Bluetooth address")
)
