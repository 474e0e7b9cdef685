package util

// CloseAndIgnoreError is a utility to tell our linter that we explicitly deem it okay
// to not check a particular error on closing of a resource.
func CloseAndIgnoreError(closer interface{ Close() error }) {
	_ = closer.Close()
}
