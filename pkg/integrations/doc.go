// Package integrations provides the shared HTTP plumbing for remote APIs.
//
// # Overview
//
// [Client] performs GET requests with a fixed set of default headers and
// JSON-decodes the response. Each remote service has its own subpackage
// built on top of it:
//
//   - [github]: GitHub contents API for fetching repository manifests
//
// # Errors
//
// Failures are reported as coded errors from [errors]:
//
//   - NETWORK_ERROR: transport failures and unexpected status codes
//   - NOT_FOUND: 404 responses
//   - UNAUTHORIZED: 401 responses
//   - RATE_LIMITED: 429 responses and 403 responses with an exhausted quota
//   - INVALID_RESPONSE: bodies that are not valid JSON for the target type
//
// Requests are attempted exactly once. Context cancellation is returned
// unwrapped so callers can tell an interrupted run from a failed request.
//
// [github]: github.com/matzehuels/assetsync/pkg/integrations/github
// [errors]: github.com/matzehuels/assetsync/pkg/errors
package integrations
