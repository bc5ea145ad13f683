// Package httputil provides HTTP utilities for the render client.
//
// # Retry
//
// [Retry] re-runs an operation on transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// Only errors wrapped in [RetryableError] trigger another attempt; anything
// else is returned immediately. The delay doubles after each failure:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return send(ctx)
//	})
//
// The render client does not retry on its own. Retrying is an explicit caller
// decision, made through the client's retry option.
package httputil
