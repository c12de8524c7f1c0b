// Package cli provides the interactive tripcart command-line client.
//
// It wires configuration, the local metadata store, the API client and the
// application services, then runs a REPL over them. Typical flow: restore
// the stored session, prompt for commands, exit on "exit" or EOF.
//
// Key features:
//   - Register / Login / Logout, account deletion
//   - Profile view and edit
//   - Display settings (language, theme, font)
//   - Groups: list, filter, create, delete, search, join, leave, members
//   - A local notification inbox
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
