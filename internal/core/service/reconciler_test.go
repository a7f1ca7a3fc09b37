package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/recordops/recordadmin/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// stubRemote is an in-memory RemoteCollection[domain.Post] whose behaviour is
// driven per call. listGate, when set, blocks List until released; used to
// interleave two loads deterministically.
type stubRemote struct {
	mu       sync.Mutex
	listResp    [][]domain.Post // consumed front-to-back, one per List call
	listErr     error
	listGate    chan struct{} // when set, List blocks here after announcing itself
	listStarted chan struct{} // receives one signal per List call when listGate is set

	createResp domain.Post
	createErr  error
	updateResp domain.Post
	updateErr  error
	patchResp  domain.Post
	patchErr   error
	deleteErr  error

	lastPatch map[string]any
	calls     []string
}

func (s *stubRemote) record(op string) {
	s.mu.Lock()
	s.calls = append(s.calls, op)
	s.mu.Unlock()
}

// List binds its response at call time so that, when two loads overlap, each
// call returns the payload matching its issue order regardless of which one
// is released from the gate first.
func (s *stubRemote) List(_ context.Context) ([]domain.Post, error) {
	s.mu.Lock()
	s.calls = append(s.calls, "list")
	var resp []domain.Post
	if len(s.listResp) > 0 {
		resp = s.listResp[0]
		if len(s.listResp) > 1 {
			s.listResp = s.listResp[1:]
		}
	}
	err := s.listErr
	gate, started := s.listGate, s.listStarted
	s.mu.Unlock()

	if gate != nil {
		started <- struct{}{}
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *stubRemote) Get(_ context.Context, id int) (domain.Post, error) {
	s.record("get")
	return domain.Post{}, domain.ErrPostNotFound
}

func (s *stubRemote) Create(_ context.Context, _ domain.Post) (domain.Post, error) {
	s.record("create")
	return s.createResp, s.createErr
}

func (s *stubRemote) Update(_ context.Context, _ int, _ domain.Post) (domain.Post, error) {
	s.record("update")
	return s.updateResp, s.updateErr
}

func (s *stubRemote) Patch(_ context.Context, _ int, fields map[string]any) (domain.Post, error) {
	s.record("patch")
	s.lastPatch = fields
	return s.patchResp, s.patchErr
}

func (s *stubRemote) Delete(_ context.Context, _ int) error {
	s.record("delete")
	return s.deleteErr
}

// stubNotifier captures raised notifications.
type stubNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *stubNotifier) ShowSuccess(msg string) {
	n.mu.Lock()
	n.successes = append(n.successes, msg)
	n.mu.Unlock()
}

func (n *stubNotifier) ShowError(msg string) {
	n.mu.Lock()
	n.errors = append(n.errors, msg)
	n.mu.Unlock()
}

func newPostReconciler(remote *stubRemote, notes *stubNotifier) *Reconciler[domain.Post] {
	return NewReconciler[domain.Post]("post", remote, notes, zerolog.Nop())
}

func seeded(t *testing.T, posts ...domain.Post) (*Reconciler[domain.Post], *stubRemote, *stubNotifier) {
	t.Helper()
	remote := &stubRemote{listResp: [][]domain.Post{posts}}
	notes := &stubNotifier{}
	r := newPostReconciler(remote, notes)
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}
	return r, remote, notes
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestReconciler_Load_ReplacesSnapshot(t *testing.T) {
	r, _, _ := seeded(t,
		domain.Post{ID: 1, UserID: 2, Title: "first"},
		domain.Post{ID: 2, UserID: 3, Title: "second"},
	)

	got := r.Snapshot()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if !r.Loaded() {
		t.Error("expected Loaded after successful load")
	}
	if r.LoadError() != nil {
		t.Errorf("expected no load error, got %v", r.LoadError())
	}
}

func TestReconciler_Load_FailureKeepsPreviousSnapshot(t *testing.T) {
	r, remote, notes := seeded(t, domain.Post{ID: 1, UserID: 2, Title: "keep me"})

	remote.listErr = errors.New("connection refused")
	if err := r.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}

	if got := r.Snapshot(); len(got) != 1 || got[0].Title != "keep me" {
		t.Errorf("previous snapshot must survive a failed reload: %+v", got)
	}
	if r.LoadError() == nil {
		t.Error("expected sticky load error for the retry affordance")
	}
	// The sticky banner is the whole affordance; no toast on top of it.
	if len(notes.errors) != 0 {
		t.Errorf("load failure must not raise a notification, got %v", notes.errors)
	}
}

func TestReconciler_Load_RecoveryClearsStickyError(t *testing.T) {
	remote := &stubRemote{listErr: errors.New("boom")}
	notes := &stubNotifier{}
	r := newPostReconciler(remote, notes)

	if err := r.Load(context.Background()); err == nil {
		t.Fatal("expected first load to fail")
	}
	if r.Loaded() {
		t.Error("nothing loaded yet")
	}

	remote.listErr = nil
	remote.listResp = [][]domain.Post{{{ID: 9, UserID: 1, Title: "late"}}}
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if r.LoadError() != nil {
		t.Error("sticky error must clear after a successful retry")
	}
}

func TestReconciler_Load_StaleResponseDiscarded(t *testing.T) {
	// Two loads in flight: the first (stale) resolves after the second.
	gate := make(chan struct{})
	remote := &stubRemote{
		listGate:    gate,
		listStarted: make(chan struct{}, 2),
		listResp: [][]domain.Post{
			{{ID: 1, UserID: 1, Title: "stale"}},
			{{ID: 2, UserID: 1, Title: "fresh"}},
		},
	}
	notes := &stubNotifier{}
	r := newPostReconciler(remote, notes)

	firstDone := make(chan error, 1)
	go func() { firstDone <- r.Load(context.Background()) }()
	<-remote.listStarted // first List parked on the gate

	secondDone := make(chan error, 1)
	go func() { secondDone <- r.Load(context.Background()) }()
	<-remote.listStarted // second List parked as well

	// Release the second call first, then the first (now superseded) one.
	gate <- struct{}{}
	if err := <-secondDone; err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	gate <- struct{}{}
	if err := <-firstDone; err != nil {
		t.Fatalf("stale load must not report an error: %v", err)
	}

	got := r.Snapshot()
	if len(got) != 1 || got[0].Title != "fresh" {
		t.Errorf("last-issued load must win, got %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Create / Update / Patch / Remove
// ---------------------------------------------------------------------------

func TestReconciler_Create_AppendsServerResponseNotDraft(t *testing.T) {
	r, remote, notes := seeded(t, domain.Post{ID: 1, UserID: 2, Title: "existing"})

	// Server trims the title and assigns the id; its representation wins.
	remote.createResp = domain.Post{ID: 42, UserID: 3, Title: "trimmed"}
	draft := domain.Post{UserID: 3, Title: "  trimmed  "}

	created, err := r.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("expected server-assigned id, got %d", created.ID)
	}

	got := r.Snapshot()
	if len(got) != 2 {
		t.Fatalf("snapshot length must grow by exactly one, got %d", len(got))
	}
	if got[1] != remote.createResp {
		t.Errorf("appended entity must match the server response, got %+v", got[1])
	}
	if len(notes.successes) != 1 || notes.successes[0] != "post created" {
		t.Errorf("expected success notification, got %v", notes.successes)
	}
}

func TestReconciler_Create_FailureLeavesSnapshotUnchanged(t *testing.T) {
	r, remote, notes := seeded(t, domain.Post{ID: 1, UserID: 2, Title: "only"})

	remote.createErr = errors.New("503 unavailable")
	if _, err := r.Create(context.Background(), domain.Post{UserID: 2, Title: "draft"}); err == nil {
		t.Fatal("expected create error")
	}

	if got := r.Snapshot(); len(got) != 1 {
		t.Errorf("snapshot must be unchanged on rejection, got %+v", got)
	}
	if len(notes.errors) != 1 {
		t.Errorf("expected one error notification, got %v", notes.errors)
	}
}

func TestReconciler_Update_ReplacesOnlyMatchingEntity(t *testing.T) {
	other := domain.Post{ID: 3, UserID: 1, Title: "untouched"}
	r, remote, _ := seeded(t, other, domain.Post{ID: 5, UserID: 1, Title: "old"})

	remote.updateResp = domain.Post{ID: 5, UserID: 1, Title: "X"}
	if _, err := r.Update(context.Background(), 5, domain.Post{ID: 5, UserID: 1, Title: "X"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := r.Snapshot()
	if len(got) != 2 {
		t.Fatalf("snapshot length must not change on update, got %d", len(got))
	}
	if got[0] != other {
		t.Errorf("non-updated entity must be untouched: %+v", got[0])
	}
	if got[1] != remote.updateResp {
		t.Errorf("updated entity must equal the server response: %+v", got[1])
	}
}

func TestReconciler_Patch_AppliesServerRepresentation(t *testing.T) {
	r, remote, _ := seeded(t, domain.Post{ID: 7, UserID: 2, Title: "before"})

	remote.patchResp = domain.Post{ID: 7, UserID: 2, Title: "after"}
	updated, err := r.Patch(context.Background(), 7, map[string]any{"title": "after"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "after" {
		t.Errorf("unexpected patch result: %+v", updated)
	}
	if remote.lastPatch["title"] != "after" {
		t.Errorf("expected only the title field in the patch, got %v", remote.lastPatch)
	}
	if got := r.Snapshot(); got[0].Title != "after" {
		t.Errorf("snapshot must carry the server representation, got %+v", got[0])
	}
}

func TestReconciler_Remove_DropsEntityById(t *testing.T) {
	r, _, notes := seeded(t,
		domain.Post{ID: 7, UserID: 2, Title: "doomed"},
		domain.Post{ID: 8, UserID: 2, Title: "survivor"},
	)

	if err := r.Remove(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := r.Snapshot()
	if len(got) != 1 || got[0].ID != 8 {
		t.Errorf("expected only id=8 to remain, got %+v", got)
	}
	if len(notes.successes) != 1 {
		t.Errorf("expected success notification, got %v", notes.successes)
	}
}

func TestReconciler_Remove_FailureIsNoOp(t *testing.T) {
	r, remote, notes := seeded(t, domain.Post{ID: 7, UserID: 2, Title: "still here"})

	remote.deleteErr = errors.New("500 internal")
	if err := r.Remove(context.Background(), 7); err == nil {
		t.Fatal("expected delete error")
	}

	if got := r.Snapshot(); len(got) != 1 || got[0].ID != 7 {
		t.Errorf("snapshot must be exactly as before the call, got %+v", got)
	}
	if len(notes.errors) != 1 {
		t.Errorf("expected one error notification, got %v", notes.errors)
	}
}

// ---------------------------------------------------------------------------
// Derived views
// ---------------------------------------------------------------------------

func TestReconciler_FilterBy_OwnerKey(t *testing.T) {
	r, _, _ := seeded(t,
		domain.Post{ID: 1, UserID: 2},
		domain.Post{ID: 2, UserID: 3},
	)

	got := r.FilterBy(func(p domain.Post) bool { return p.UserID == 2 })
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected exactly the userId=2 post, got %+v", got)
	}

	all := r.FilterBy(func(domain.Post) bool { return true })
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Errorf("match-all must preserve original order, got %+v", all)
	}

	// Deriving a view never mutates the snapshot.
	if snap := r.Snapshot(); len(snap) != 2 {
		t.Errorf("snapshot mutated by FilterBy: %+v", snap)
	}
}

func TestReconciler_SnapshotIsACopy(t *testing.T) {
	r, _, _ := seeded(t, domain.Post{ID: 1, UserID: 2, Title: "original"})

	snap := r.Snapshot()
	snap[0].Title = "mutated by caller"

	if got := r.Snapshot(); got[0].Title != "original" {
		t.Error("callers must not be able to mutate the reconciler's snapshot")
	}
}
