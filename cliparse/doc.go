/*
Package cliparse parses server configuration from CLI flags with
environment-variable fallback.

Flags win over the environment; secrets should come from the
environment in real deployments. STORE_TYPE selects the storage
backend (memory, postgres, sqlite, mongo, bolt) and the per-type
connection settings are validated here so a misconfigured process
fails at startup, not on the first request.
*/
package cliparse
