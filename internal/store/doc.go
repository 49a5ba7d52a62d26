// Package store holds the file inbox that carries inbound deep links from
// short-lived "linkbox open" invocations to the running requester.
//
// Each link is written atomically to its own file named "<ulid>.link", so
// lexical order is arrival order and a reader never sees a partial write.
// Only links are stored. Key material never touches the disk.
package store
