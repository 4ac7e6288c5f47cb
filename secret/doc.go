// Package secret expands environment references in configuration values.
//
// Check targets and server credentials often embed secrets (database paths,
// bearer tokens, signing keys). Configuration files reference them as
// ${VAR} so the secret itself never lands on disk:
//
//	[server]
//	jwt_secret = "${LAUNCHGATE_JWT_SECRET}"
//	addr = "${LAUNCHGATE_ADDR:-:8080}"
//
// ExpandEnvStrict fails when a referenced variable is unset and has no
// fallback.
package secret
