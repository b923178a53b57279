// Package errors provides structured, actionable errors for loadboard.
//
// Each error carries a code from the registry, a category, a short message
// and optionally a source location, a hint and the wrapped cause:
//
//	err := errors.New("L012").
//	    WithLocation("data/stg-1.yaml", 0, 0).
//	    WithDetail("series aerob has 50 weeks").
//	    Wrap(cause)
//
//	fmt.Fprintln(os.Stderr, err.Format())
//
// Codes are grouped by range:
//   - L001-L009 configuration
//   - L010-L029 fixtures and raw records
//   - L030-L039 remote storage
//   - L040-L049 runtime lookups
//   - L050-L059 live protocol
package errors
