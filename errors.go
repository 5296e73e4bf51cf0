package gonewton

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFunction indicates the function text is empty after normalisation.
	ErrEmptyFunction = errors.New("gonewton: function is empty")
	// ErrInvalidNumericInput indicates a non-numeric x0, or an epsilon that is
	// non-numeric, non-finite or not positive.
	ErrInvalidNumericInput = errors.New("gonewton: invalid numeric input")
	// ErrMultipleEquals indicates the equation text contains more than one '='.
	ErrMultipleEquals = errors.New("gonewton: equation contains more than one '='")
	// ErrParse indicates malformed function syntax.
	ErrParse = errors.New("gonewton: parse error")
	// ErrEvaluation indicates a domain error while evaluating a function.
	ErrEvaluation = errors.New("gonewton: evaluation error")
	// ErrNonFinite indicates f or f' evaluated to NaN or ±Inf.
	ErrNonFinite = errors.New("gonewton: non-finite value")
	// ErrNearZeroDerivative indicates |f'(x)| fell below the derivative floor.
	ErrNearZeroDerivative = errors.New("gonewton: derivative is too close to zero")

	// ErrUnknownTool indicates a tool call named no known tool.
	ErrUnknownTool = errors.New("gonewton: unknown tool")
	// ErrToolParams indicates missing, mistyped or unexpected tool parameters.
	ErrToolParams = errors.New("gonewton: invalid tool parameters")
)

// ErrorKind is a stable, machine-readable failure tag.
type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindEmptyFunction      ErrorKind = "empty_function"
	KindInvalidNumeric     ErrorKind = "invalid_numeric_input"
	KindMultipleEquals     ErrorKind = "multiple_equals"
	KindParse              ErrorKind = "parse_error"
	KindEvaluation         ErrorKind = "evaluation_error"
	KindNonFinite          ErrorKind = "non_finite"
	KindNearZeroDerivative ErrorKind = "near_zero_derivative"
	KindUnknownTool        ErrorKind = "unknown_tool"
	KindToolParams         ErrorKind = "invalid_params"
	KindInternal           ErrorKind = "internal"
)

var kindOrder = []struct {
	err  error
	kind ErrorKind
}{
	{ErrEmptyFunction, KindEmptyFunction},
	{ErrInvalidNumericInput, KindInvalidNumeric},
	{ErrMultipleEquals, KindMultipleEquals},
	{ErrParse, KindParse},
	{ErrEvaluation, KindEvaluation},
	{ErrNonFinite, KindNonFinite},
	{ErrNearZeroDerivative, KindNearZeroDerivative},
	{ErrUnknownTool, KindUnknownTool},
	{ErrToolParams, KindToolParams},
}

// KindOf maps err to its ErrorKind. A nil error is KindNone; an error that
// wraps none of the package sentinels is KindInternal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	for _, k := range kindOrder {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IterationError records where the Newton loop stopped.
type IterationError struct {
	Iteration int     // zero-based step that failed
	X         float64 // x at which f or f' was evaluated
	Err       error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("iteration %d at x = %g: %v", e.Iteration, e.X, e.Err)
}

func (e *IterationError) Unwrap() error { return e.Err }
