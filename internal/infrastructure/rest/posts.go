package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/recordops/recordadmin/internal/core/domain"
	"github.com/recordops/recordadmin/internal/core/ports"
)

// Posts is the RemoteCollection client for the /posts resource.
type Posts struct {
	collection[domain.Post]
}

var _ ports.RemoteCollection[domain.Post] = Posts{}

// NewPosts returns the posts collection client.
func NewPosts(c *Client) Posts {
	return Posts{collection[domain.Post]{
		client:   c,
		path:     "/posts",
		notFound: domain.ErrPostNotFound,
	}}
}

// ListByUser fetches only the posts owned by userID, using the backend's
// userId query parameter. The console filters its local snapshot instead for
// day-to-day narrowing; this exists for callers that want a server-side
// filtered fetch.
func (p Posts) ListByUser(ctx context.Context, userID int) ([]domain.Post, error) {
	query := url.Values{"userId": {strconv.Itoa(userID)}}
	var out []domain.Post
	if err := p.client.do(ctx, http.MethodGet, p.path, query, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}
