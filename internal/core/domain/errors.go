package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrPostNotFound = errors.New("post not found")

// ErrRemote marks any failure coming back from the remote service, whether a
// transport error or a non-2xx response. No structured payload is assumed
// beyond "it failed"; callers match with errors.Is and surface a friendly
// message instead of the raw error text.
var ErrRemote = errors.New("remote service request failed")
