// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics defines prometheus collectors and the /metrics handler.

Collectors:

  - billdesk_assignments_total{outcome}: assignment operations by result
  - billdesk_assignment_retries_total: transaction retries after lost races
  - billdesk_http_request_duration_seconds{method,path,status}: request latency

WithMetrics wraps a handler with the duration histogram; Handler returns the
promhttp scrape endpoint.
*/
package metrics
