//go:build !appendlist_invariants

package appendlist

const invariantChecks = false
