// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package deviceid produces the stable pseudo-identifier used to
deduplicate votes per device.

The identifier is a base64 encoding of stable device/browser
attributes (user agent, language, timezone offset, screen geometry,
color depth), persisted under a fixed cache key so the same device
reuses it across sessions. It is spoofable by design: its only role
is best-effort deduplication, never authentication.

If the cache location is unusable the provider degrades to a fresh
random identifier per call - deduplication has no effect for that
session, and nothing crashes.

HashIP produces the salted IP hash stored on vote records as a
secondary anti-abuse signal.
*/
package deviceid
