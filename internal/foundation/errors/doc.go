// Package errors provides the classified error primitives used across bookgen.
//
// Every failure of a generation run is reported as a ClassifiedError carrying a
// category (file access, external tool, encoding, config, ...), a severity and
// structured context such as the page path or the module being introspected.
//
// Example usage:
//
//	err := errors.ExternalToolError("introspection failed").
//		WithCause(runErr).
//		WithContext("module", "core::functions").
//		Build()
package errors
