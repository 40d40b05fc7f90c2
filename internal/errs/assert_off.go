//go:build ndimage_noassert

package errs

// AssertEnabled reports whether internal assertions are compiled in.
const AssertEnabled = false

// Assert is a no-op in builds tagged ndimage_noassert.
func Assert(bool, string) {}
