// Package errors provides the classified error type used at docnav's command boundary.
//
// Core packages return plain Go errors (sentinels and typed errors). Commands wrap
// them into a ClassifiedError so the CLI can pick an exit code and a log level:
//
//	return errors.WrapError(err, errors.CategoryNavigation, "navigation tree build failed").
//		WithContext("posts_file", path).
//		Build()
package errors
