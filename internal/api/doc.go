// Package api exposes a task store over a Unix socket.
//
// Every connection carries one CBOR request of the form
// {action: "...", ...fields} and receives one {ok, error?, data?}
// response. Refused requests (unknown project, unknown task, bad
// deadline) come back as ok=false with the same message the
// interactive shell would print.
package api
