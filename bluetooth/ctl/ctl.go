// Package ctl drives interactive sessions with the Bluetooth control tool.
package ctl

import (
	"errors"
	"time"
)

// The different session error types.
var (
	ErrSessionStart  = errors.New("cannot start control session")
	ErrPromptTimeout = errors.New("timeout waiting for control prompt")
)

const (
	// DefaultPath is the control tool that is started when no other path is configured.
	DefaultPath = "bluetoothctl"

	// DefaultPacing is the pause after each command, which lets the control tool
	// flush its own output before the next command is sent.
	DefaultPacing = 400 * time.Millisecond

	// DefaultCloseTimeout is how long the control tool may take to exit
	// after the exit command before it is killed.
	DefaultCloseTimeout = 2 * time.Second

	exitCommand = "exit"
)
