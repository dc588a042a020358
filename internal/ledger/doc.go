// Package ledger provides an HTTP client for the ledger back end.
//
// # Overview
//
// This package defines the client ledgerdesk uses to read operators, stats and
// records, and to mutate record status and the operator directory. It owns the
// wire types and the error model every other package reports through.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client, endpoint paths and request handling
//   - types.go: Data structures mirroring the API schema
//   - errors.go: APIError, validation errors and failure classification
//
// # Client Usage
//
// Create a client from the configured API root. The path component is kept,
// so "http://localhost:5000/api" resolves the stats endpoint to
// "http://localhost:5000/api/customer/stats":
//
//	client, err := ledger.NewClient(cfg.APIURL(), ledger.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	ops, err := client.ListOperators(ctx, ledger.RoleCustomer)
//
// # API Endpoints
//
//   - GET  /customer/operators/list: operators visible to customers
//   - GET  /admin/operators/list: operators visible to admins
//   - POST /customer/operators/add: create an operator, returns operator_id
//   - POST /update_record: set status, operator_id and channel_id on a record
//   - GET  /customer/stats: completed and pending totals
//   - GET  /customer/records/list: records filtered by date range and status
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: ledgerdesk/0.1
//   - Carry a random X-Request-ID for correlating with server logs
//   - Are unbounded in time unless WithTimeout is given
//
// Pointer ids in UpdateRecordRequest marshal as JSON null when unset; the
// server relies on explicit nulls to clear an attribution.
//
// # Error Handling
//
// Classify sorts failures into four kinds:
//
//   - KindTransport: connection refused, DNS failure, malformed JSON
//   - KindHTTP: a non-2xx status
//   - KindApplication: a 2xx response with success=false
//   - KindValidation: input rejected before any request was sent
//
// Message extracts the server's "error" field for display, falling back to a
// caller-supplied string. Example error messages:
//   - "execute request: dial tcp 127.0.0.1:5000: connect: connection refused"
//   - "api POST /update_record returned status 500"
//   - "api POST /customer/operators/add reported failure: name taken"
//
// # Thread Safety
//
// The Client is safe for concurrent use.
package ledger
