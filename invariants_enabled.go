//go:build appendlist_invariants

package appendlist

// Layout checks run before and after every Push and on every Len.
// Enable with: go test -tags appendlist_invariants ./...
const invariantChecks = true
