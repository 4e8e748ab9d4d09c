package contract

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNotInterface is returned when the contract type parameter is
	// not an interface type.
	ErrNotInterface = errors.New("contract type is not an interface")
	// ErrNilCandidate is returned when the candidate value is nil.
	ErrNilCandidate = errors.New("candidate is nil")
	// ErrContractViolated is returned when the candidate's type does not
	// provide the interface's full method set.
	ErrContractViolated = errors.New("contract violated")
)

// Satisfies reports whether the dynamic type of candidate provides the
// full method set of the interface type T.
func Satisfies[T any](candidate any) bool {
	return Check[T](candidate) == nil
}

// MustImplement panics if the dynamic type of candidate does not
// provide the full method set of the interface type T. Intended for
// init-time registration paths where a violation is a programming error.
func MustImplement[T any](candidate any) {
	if err := Check[T](candidate); err != nil {
		panic(err)
	}
}

// Check verifies that the dynamic type of candidate provides every
// method of the interface type T with a matching signature. On failure
// it returns an error wrapping ErrContractViolated that names each
// missing or mismatched method.
func Check[T any](candidate any) error {
	iface := reflect.TypeOf((*T)(nil)).Elem()
	if iface.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s", ErrNotInterface, iface)
	}

	if candidate == nil {
		return fmt.Errorf("%w: cannot check against %s", ErrNilCandidate, iface)
	}

	typ := reflect.TypeOf(candidate)
	if typ.Implements(iface) {
		return nil
	}

	// The candidate fails; build a method-by-method report so the caller
	// sees every gap at once.
	problems := describeViolations(iface, typ)

	return fmt.Errorf(
		"%w: %s does not satisfy %s:\n  - %s",
		ErrContractViolated, typ, iface, strings.Join(problems, "\n  - "),
	)
}

// describeViolations lists, per interface method, what the candidate
// type is missing. Precondition: typ does not implement iface.
func describeViolations(iface, typ reflect.Type) []string {
	var problems []string

	for i := 0; i < iface.NumMethod(); i++ {
		want := iface.Method(i)

		got, ok := typ.MethodByName(want.Name)
		if !ok {
			problem := fmt.Sprintf("missing method %s%s", want.Name, signature(want.Type, 0))

			// A value type does not expose pointer-receiver methods;
			// point the caller at the likely fix.
			if typ.Kind() != reflect.Pointer {
				if _, onPointer := reflect.PointerTo(typ).MethodByName(want.Name); onPointer {
					problem += fmt.Sprintf(" (declared on *%s; pass a pointer)", typ)
				}
			}

			problems = append(problems, problem)

			continue
		}

		if !methodMatches(want.Type, got.Type) {
			problems = append(problems, fmt.Sprintf(
				"method %s has signature %s, want %s",
				want.Name, signature(got.Type, 1), signature(want.Type, 0),
			))
		}
	}

	if len(problems) == 0 {
		// Implements was false yet every method lined up; the only way
		// left is an unexported interface method from another package.
		problems = append(problems, fmt.Sprintf("%s has unexported methods %s cannot provide", iface, typ))
	}

	return problems
}

// methodMatches compares an interface method signature against a
// concrete method signature, skipping the concrete receiver argument.
func methodMatches(want, got reflect.Type) bool {
	const recv = 1

	if got.NumIn()-recv != want.NumIn() || got.NumOut() != want.NumOut() {
		return false
	}

	if got.IsVariadic() != want.IsVariadic() {
		return false
	}

	for i := 0; i < want.NumIn(); i++ {
		if got.In(i+recv) != want.In(i) {
			return false
		}
	}

	for i := 0; i < want.NumOut(); i++ {
		if got.Out(i) != want.Out(i) {
			return false
		}
	}

	return true
}

// signature renders a func type as "(in...) (out...)", skipping the
// first skipIn arguments (the receiver of a concrete method).
func signature(fn reflect.Type, skipIn int) string {
	var b strings.Builder

	b.WriteByte('(')

	for i := skipIn; i < fn.NumIn(); i++ {
		if i > skipIn {
			b.WriteString(", ")
		}

		if fn.IsVariadic() && i == fn.NumIn()-1 {
			b.WriteString("...")
			b.WriteString(fn.In(i).Elem().String())

			continue
		}

		b.WriteString(fn.In(i).String())
	}

	b.WriteByte(')')

	switch fn.NumOut() {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(fn.Out(0).String())
	default:
		b.WriteString(" (")

		for i := 0; i < fn.NumOut(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(fn.Out(i).String())
		}

		b.WriteByte(')')
	}

	return b.String()
}
