package model

import "fmt"

// StructuralError reports a required node or attribute missing from the
// response document. It aborts the load for that document.
type StructuralError struct {
	Node string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("required node %q not found in response", e.Node)
}

// EnumError reports an unrecognized discriminant value (report type or
// metric type). Both are fatal: downstream logic cannot proceed without
// knowing the shape of the data.
type EnumError struct {
	Kind  string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("unrecognized %s %q", e.Kind, e.Value)
}

// CountError reports an unparseable usage count. The count is the entire
// point of the report, so there is no silent zero-substitution.
type CountError struct {
	Value string
	Err   error
}

func (e *CountError) Error() string {
	return fmt.Sprintf("unparseable count %q: %s", e.Value, e.Err)
}

func (e *CountError) Unwrap() error {
	return e.Err
}
