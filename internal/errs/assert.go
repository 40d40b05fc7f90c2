//go:build !ndimage_noassert

package errs

// AssertEnabled reports whether internal assertions are compiled in.
const AssertEnabled = true

// Assert panics with an assertion-kind Error if cond does not hold.
// Build with -tags ndimage_noassert to compile the checks out.
func Assert(cond bool, message string) {
	if !cond {
		panic(addFrame(Assertion("Failed assertion: "+message), 2))
	}
}
