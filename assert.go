package gridbox

// assert panics when a contract check fails.
func assert(cond bool, msg string) {
	if ChecksEnabled && !cond {
		panic("gridbox: " + msg)
	}
}
