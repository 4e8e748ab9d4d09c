// Package contract validates that a candidate type provides every
// method of an interface, reporting each missing or mismatched method
// by name instead of a bare "does not implement" verdict.
//
// For types known at compile time, prefer the usual static assertion:
//
//	var _ io.Closer = (*MyType)(nil)
//
// contract is for the cases the compiler cannot see: values arriving
// through plugin registries, configuration-selected implementations, or
// any dynamically typed boundary where a conformance failure should
// produce a diagnosable error rather than a distant type assertion panic.
package contract
