//go:build gridbox_nochecks

package gridbox

// ChecksEnabled reports whether contract checks are compiled in.
const ChecksEnabled = false
