// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags and environment
variables.

Flags take precedence; environment variables fill anything left unset. A .env
file in the working directory is loaded first when present, so local
development needs no exported variables.

# Required settings

  - DATABASE_URL (-d): PostgreSQL connection string

# Election rules

  - VOTE_WEIGHT_MEMBER (-cap-member): quadratic cap for members (default 22)
  - VOTE_WEIGHT_PUBLIC (-cap-public): quadratic cap for everyone else (default 10)
  - BALLOT_SIZE (-ballot-size): default ballot size (default 5)
  - ELECTION_HOURS (-election-hours): default election duration (default 72)
  - MAX_BALLOT_APPEARANCES (-max-appearances): appearance cap per book (default 3)
  - STAGING (-staging): include zero-engagement nominations on ballots

# Chat platform

  - CHAT_API_URL (-chat-url), CHAT_BOT_TOKEN (-chat-token)
  - BALLOT_CHANNEL_ID, NOM_CHANNEL_ID, RESULTS_CHANNEL_ID, PREDICTIONS_CHANNEL_ID

# Secrets

  - ADMIN_TOKEN (-admin-token): required header value for open/close operations
*/
package cliparse
