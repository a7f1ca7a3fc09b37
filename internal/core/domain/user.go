package domain

// User is a managed account on the remote service. The ID is assigned by the
// server on creation and never changes afterwards.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// EntityID satisfies the Entity constraint used by the reconciler.
func (u User) EntityID() int { return u.ID }
