package db

import _ "embed"

// Schema holds the full DDL for the service. The migrate command applies it
// with idempotent statements, so re-running is safe.
//
//go:embed schema.sql
var Schema string
