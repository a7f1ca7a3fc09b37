package rest

import (
	"github.com/recordops/recordadmin/internal/core/domain"
	"github.com/recordops/recordadmin/internal/core/ports"
)

// Users is the RemoteCollection client for the /users resource.
type Users struct {
	collection[domain.User]
}

var _ ports.RemoteCollection[domain.User] = Users{}

// NewUsers returns the users collection client.
func NewUsers(c *Client) Users {
	return Users{collection[domain.User]{
		client:   c,
		path:     "/users",
		notFound: domain.ErrUserNotFound,
	}}
}
