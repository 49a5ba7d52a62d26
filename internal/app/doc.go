// Package app wires application dependencies for the CLI.
//
// LoadConfig layers defaults, an optional YAML file and LINKBOX_ environment
// variables into a Config. NewWire builds the logger factory, metrics, link
// opener, inbox, session, router and queue from it, and App runs them as an
// interactive requester.
package app
