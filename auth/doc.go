// Package auth guards health endpoints with JWT bearer authentication.
//
// The full health report names every subsystem and its failure detail, so
// hosts that expose it beyond localhost can require a signed token:
//
//	authn := auth.NewJWTAuthenticator(auth.JWTConfig{
//	    Issuer:        "deploy-bot",
//	    RequiredScope: "health:read",
//	}, auth.NewStaticKeyProvider(secret))
//
//	mux.Handle("/health", auth.RequireAuth(authn, health.ReportHandler(v)))
package auth
