// Package errors provides structured error types for better observability
// and programmatic error handling across the client, CLI and mock server.
//
// API failures are reported by pkg/transport as *transport.APIError; callers that
// need a classification use CodeFromStatus or APIError.Code, and the CLI wraps
// failures into a StructuredError carrying the operation and status.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "failed to load aligned feature",
//	    apiErr,
//	    map[string]any{
//	        "operation": "getAlignedFeature",
//	        "projectId": projectID,
//	    },
//	)
package errors
