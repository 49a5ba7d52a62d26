// Package deeplink moves deep links in and out of the process.
//
// Inbound, a Watcher turns files dropped into the inbox into Queue pushes,
// and a single Queue consumer feeds each link to the Router, which decodes
// it and drives the session. Outbound, a LinkOpener hands links to the
// operating system (ExecOpener) or prints them (WriterOpener).
package deeplink
