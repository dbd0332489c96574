package bluetooth

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Device describes a single device as listed by the control daemon.
type Device struct {
	Address Address
	Name    string
}

// ConnectResult describes the outcome of a pair, trust and connect sequence.
type ConnectResult struct {
	Connected  bool
	Transcript string
}

const (
	connectSuccessful = "Connection successful"
	alreadyConnected  = "already connected"
)

var deviceLine = regexp.MustCompile(`Device ((?:[0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}) (.+)`)

// ParseDevices returns one device for every "Device <address> <name>" line
// within the transcript, in the order they appear. Duplicates are kept.
func ParseDevices(transcript string) []Device {
	var devices []Device

	for _, line := range strings.Split(transcript, "\n") {
		match := deviceLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if match == nil {
			continue
		}

		devices = append(devices, Device{
			Address: Address(match[1]),
			Name:    match[2],
		})
	}

	return devices
}

// ConnectSucceeded reports whether the transcript of a connect sequence
// shows that the device is connected.
func ConnectSucceeded(transcript string) bool {
	if strings.Contains(transcript, connectSuccessful) {
		return true
	}

	return strings.Contains(cases.Fold().String(transcript), alreadyConnected)
}
