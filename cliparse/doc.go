// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

Flags take precedence, environment variables fill the gaps:

  - -p / PORT: server port (default 3419)
  - -d / DATABASE_URL: postgres URL or sqlite path (required)
  - -t / DATABASE_TYPE: "sqlite" (default) or "postgres"
  - --operator-salt / OPERATOR_KEY_SALT: secret for operator key HMAC (required)
*/
package cliparse
