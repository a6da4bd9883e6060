// Package transport is the shared REST invocation layer used by every SIRIUS
// API service.
//
// A Client owns the base URL, the tuned *http.Client, default headers and an
// optional client-side rate limiter. Services describe each call as a Request
// (operation name, method, path template, query, body or multipart form, and
// the candidate media types) and hand it to Invoke, which:
//
//   - expands {name} placeholders with path-escaped values
//   - encodes the query with list values repeated, one parameter per element
//   - picks one Content-Type and an Accept value from the candidates
//   - sends the request and reads the body fully
//   - maps non-2xx responses to *APIError
//   - decodes the body into the caller's value
//
// The response returned by Invoke always has a readable Body, so callers can
// inspect status, headers and raw payload after decoding.
//
// Required parameters are checked before a Request is built:
//
//	if err := transport.RequireString(op, "projectId", projectID); err != nil {
//	    return nil, nil, err
//	}
//
// Such failures are *APIError values with StatusCode 400, Local() == true, and
// they match ErrMissingParameter with errors.Is. No network call is made.
//
// Client-side metrics are exported through the default Prometheus registry:
//
//   - sirius_client_requests_total{operation,method,status}
//   - sirius_client_request_duration_seconds{operation}
//   - sirius_client_requests_in_flight
//   - sirius_client_validation_failures_total{operation}
package transport
