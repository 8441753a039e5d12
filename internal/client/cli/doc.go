// Package cli provides the DecoLog command-line client.
//
// It wires configuration, the local SQLite dive log and the license service
// API behind a cobra command tree. Typical flow: the root command loads the
// config, opens the database (running migrations), builds the services and
// dispatches to a subcommand.
//
// Command groups:
//   - dive add | list | show | edit | rm   — the dive log itself
//   - profile show | edit                  — the diver profile
//   - stats                                — aggregates over the log
//   - units get | set                      — metric / imperial display
//   - license status | upgrade | refresh   — tier state and checkout
//   - sync now | enable | disable | status — cloud backup
//   - export                               — JSON / CSV snapshot
//   - support                              — file a support message
//   - seed                                 — example dives for a fresh log
//
// Dive and profile forms prompt interactively when no field flags were given
// and stdin is a terminal; otherwise the flags are the only input, which
// keeps the commands scriptable.
package cli
