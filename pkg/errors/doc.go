// Package errors defines StructuredError and the codes shared by the CLI and
// the API server.
//
// The recommendation engine itself never fails. Codes are raised by the rule
// and product loaders and by request validation, and the server package maps
// them to HTTP statuses.
//
//	return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
//	    "invalid confidence value", parseErr,
//	    map[string]any{"row": 12, "column": "confidence"})
//
// Test the class of a wrapped error with IsCode or errors.Is against a
// StructuredError of the same code.
package errors
