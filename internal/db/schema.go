package db

// schema is the full database schema. Submissions are append-only: there are
// no UPDATE or DELETE paths anywhere in the codebase, so the table carries no
// updated_at or deleted_at columns.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS submissions (
    id                  INTEGER PRIMARY KEY,
    qr_code             TEXT,
    qr_code_valid       INTEGER NOT NULL DEFAULT 0,
    status              TEXT NOT NULL CHECK (status IN ('processed', 'expired', 'error')),
    quality             TEXT NOT NULL CHECK (quality IN ('good', 'fair', 'poor')),
    original_image_path TEXT NOT NULL,
    thumbnail_path      TEXT NOT NULL,
    image_size          INTEGER NOT NULL,
    image_width         INTEGER NOT NULL,
    image_height        INTEGER NOT NULL,
    error_message       TEXT,
    created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`
