// Package rest issues calls against the management REST API and normalizes
// their outcomes.
//
// A Dispatcher picks one of two transports per call. TokenAuthTransport sends
// the request directly, carrying a bearer token when the identity provider is
// initialized. ChallengeResponseTransport delegates to the session's
// authenticated client, which answers Digest or Basic challenges itself.
//
// Transport errors are converted once into a *Failure, tagged as a
// connectivity, HTTP or other failure. The Normalizer turns a response or a
// failure into an ActionResponse; nothing past it needs to inspect errors.
//
// Example:
//
//	dispatcher := rest.NewDispatcher(identity, capability,
//	    rest.WithLogger(logger),
//	    rest.WithMetrics(metrics),
//	)
//	normalizer := rest.NewNormalizer(rest.WithNormalizerLogger(logger))
//
//	resp, err := dispatcher.IssueRequest(ctx, rest.Request{
//	    URL:    baseURL + "/rest/v2/caches/users?action=clear",
//	    Method: http.MethodPost,
//	})
//	result := normalizer.NormalizeCRUD("Cache cleared", resp, err)
package rest
