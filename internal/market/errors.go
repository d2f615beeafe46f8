package market

import "fmt"

// RetrievalError wraps any upstream failure: network errors, non-2xx
// responses, provider error envelopes, and malformed bodies. Callers treat
// all of them the same way, so one type covers the whole taxonomy.
type RetrievalError struct {
	Symbol string
	Op     string // "history" or "fundamentals"
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to retrieve %s for %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// retrievalErr wraps err as a RetrievalError for the given symbol and op.
func retrievalErr(symbol, op string, err error) error {
	return &RetrievalError{Symbol: symbol, Op: op, Err: err}
}
