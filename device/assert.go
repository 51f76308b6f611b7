package device

import "github.com/gogpu/gridbox"

// assert panics when a contract check fails.
func assert(cond bool, msg string) {
	if gridbox.ChecksEnabled && !cond {
		panic("device: " + msg)
	}
}
