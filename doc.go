// Package client provides an HTTP client for the merchant API used by the
// card terminal app.
//
// The client wraps [github.com/go-resty/resty/v2] and turns every outcome of
// a request into a [Result]: a success carrying decoded data, or a failure
// carrying a user-facing message, a code and, for logging, the underlying
// cause. Callers branch on [Result.Success] instead of handling errors.
//
// # Basic Usage
//
//	session := client.NewSession()
//
//	c := client.New("https://api.example.com",
//	    client.WithTokenProvider(session),
//	    client.WithRequestLogger(client.NewZapLogger(logger)),
//	)
//
//	if err := c.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	login := c.Login(ctx, email, password)
//	if login.Failure() {
//	    showError(login.Message())
//	    return
//	}
//	session.SetAccessToken(login.Data().AccessToken)
//
//	merchant := c.GetMerchantID(ctx, login.Data().UserID)
//
// Requests not covered by the typed endpoint methods go through [Do].
//
// # Configuration
//
// Configuration is supplied as [Option] functions passed to [New]. Invalid
// values are silently ignored and the default is retained; all configuration
// is validated when [Client.Connect] is called. [LoadConfig] reads the same
// settings from a file and MERCHANT_API_* environment variables.
//
// # Failures
//
// [Classify] maps errors to failures:
//
//   - network unreachable: "Network error", code 0
//   - HTTP error status: the "message" field of the response body, or the
//     generic message, with the status as code
//   - request never sent (timeouts, encoding errors, missing access token):
//     "Unable to send request", code -1
//   - success status with a body that cannot be decoded: the generic message,
//     with the status as code
//
// [Result.Kind] distinguishes these, including [KindMissingAccessToken] for
// requests that required auth while no token was available. Such requests
// never leave the process.
//
// # Authentication
//
// Requests with RequiresAuth carry "Authorization: Bearer <token>". The token
// is the request's own AccessToken if set, otherwise the one returned by the
// [TokenProvider] given to [WithTokenProvider], typically a [Session].
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger], or use
// [NewZapLogger]. The default [NoopLogger] discards all log output. Failure
// causes are logged, never returned in messages.
package client
