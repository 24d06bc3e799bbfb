package validation

import "card-tokenizer/internal/stripeerr"

// Result is the outcome of validating one field or a whole card. A Result is
// valid exactly when its error set is empty. Results are never mutated after
// construction; Combine builds a new one.
type Result struct {
	Valid  bool
	Errors []stripeerr.Error
}

// OK returns a passing result.
func OK() Result {
	return Result{Valid: true}
}

// Fail returns a failing result carrying the given errors.
func Fail(errs ...stripeerr.Error) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Combine unions sub-results without re-running the underlying checks.
// Duplicate errors are kept once; errors compare by value.
func Combine(results ...Result) Result {
	combined := Result{Valid: true}
	for _, r := range results {
		for _, e := range r.Errors {
			if !combined.contains(e) {
				combined.Errors = append(combined.Errors, e)
			}
		}
		combined.Valid = combined.Valid && r.Valid
	}
	return combined
}

func (r Result) contains(err stripeerr.Error) bool {
	for _, e := range r.Errors {
		if e == err {
			return true
		}
	}
	return false
}
