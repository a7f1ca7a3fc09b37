package ports

import "context"

// Entity is any record with a server-assigned integer identity.
type Entity interface {
	EntityID() int
}

// RemoteCollection is the per-collection CRUD contract against the remote
// REST service. Every call either returns the authoritative server
// representation or an error; there is no partial success.
//
// Create must be given a draft whose id is zero; the server assigns the real
// one. Update replaces the full entity, Patch sends only the given fields;
// both return the complete updated representation, which callers must treat
// as authoritative (the server may recompute fields).
type RemoteCollection[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id int, entity T) (T, error)
	Patch(ctx context.Context, id int, fields map[string]any) (T, error)
	Delete(ctx context.Context, id int) error
}
