// Package commands defines the linkbox CLI.
//
// Commands
//
//   - run      Start the requester and accept console commands
//   - open     Hand an inbound link to the running requester
//   - decode   Pretty-print a base64 link record
//   - keygen   Print a fresh public key, optionally with a shared-key fingerprint
//
// # Implementation
//
// The root command loads configuration (defaults, YAML file, LINKBOX_
// environment) before any subcommand runs. "open" is the command to register
// as the operating system's handler for the requester's link scheme; it only
// drops the link into the inbox, where "run" picks it up.
package commands
