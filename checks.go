//go:build !gridbox_nochecks

package gridbox

// ChecksEnabled reports whether contract checks are compiled in. Checks guard
// programmer errors (out-of-box access, malformed boxes, shape mismatches);
// they panic and are never recoverable. Build with the gridbox_nochecks tag
// to compile them out.
const ChecksEnabled = true
