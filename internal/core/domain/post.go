package domain

// NoOwner is the sentinel UserID meaning "no user selected yet". The remote
// service never assigns it, so drafts can use it safely.
const NoOwner = 0

// Post is a record owned by a user. UserID is a foreign key by convention
// only: the server does not verify the referenced user exists, and a post may
// point at a user that is not present in the currently loaded user list.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
}

// EntityID satisfies the Entity constraint used by the reconciler.
func (p Post) EntityID() int { return p.ID }
