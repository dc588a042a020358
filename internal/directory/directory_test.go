package directory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/five82/ledgerdesk/internal/ledger"
)

type fakeSource struct {
	mu        sync.Mutex
	operators []ledger.Operator
	listErr   error
	addErr    error
	nextID    int64
	roles     []ledger.Role
	added     []string
	channels  [][]string
}

func (f *fakeSource) ListOperators(_ context.Context, role ledger.Role) ([]ledger.Operator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles = append(f.roles, role)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.operators, nil
}

func (f *fakeSource) AddOperator(_ context.Context, name string, channels []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.nextID++
	f.added = append(f.added, name)
	f.channels = append(f.channels, channels)
	op := ledger.Operator{ID: f.nextID, Name: name}
	for i, ch := range channels {
		op.Channels = append(op.Channels, ledger.Channel{ID: int64(100 + i), Name: ch})
	}
	f.operators = append(f.operators, op)
	return f.nextID, nil
}

func TestLoad_ReplacesCacheAndUsesRole(t *testing.T) {
	src := &fakeSource{operators: []ledger.Operator{
		{ID: 3, Name: "Alice", Channels: []ledger.Channel{{ID: 1, Name: "WeChat"}}},
	}}
	d := New(src, ledger.RoleAdmin, nil)

	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(src.roles) != 1 || src.roles[0] != ledger.RoleAdmin {
		t.Fatalf("roles = %v, want [admin]", src.roles)
	}
	ops := d.Operators()
	if len(ops) != 1 || ops[0].Name != "Alice" {
		t.Fatalf("Operators = %#v, want Alice", ops)
	}

	// Callers cannot mutate the cache through the returned copy.
	ops[0].Channels[0].Name = "mutated"
	if got, _ := d.Get(3); got.Channels[0].Name != "WeChat" {
		t.Fatalf("cache mutated through copy: %#v", got)
	}
}

func TestLoad_FailureResetsCache(t *testing.T) {
	src := &fakeSource{operators: []ledger.Operator{{ID: 1, Name: "Bob"}}}
	d := New(src, "", nil)
	if d.Role() != ledger.RoleCustomer {
		t.Fatalf("Role = %q, want customer default", d.Role())
	}
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	src.listErr = errors.New("boom")
	if err := d.Load(context.Background()); err == nil {
		t.Fatalf("Load returned nil error, want boom")
	}
	if ops := d.Operators(); len(ops) != 0 {
		t.Fatalf("Operators after failure = %#v, want empty", ops)
	}
}

func TestSave_AppendsWithServerID(t *testing.T) {
	src := &fakeSource{nextID: 40}
	d := New(src, ledger.RoleCustomer, nil)

	id, err := d.Save(context.Background(), "  Carol  ")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if id != 41 {
		t.Fatalf("id = %d, want 41", id)
	}
	op, ok := d.Get(41)
	if !ok || op.Name != "Carol" || len(op.Channels) != 0 {
		t.Fatalf("Get(41) = %#v, %v; want Carol without channels", op, ok)
	}
	if len(src.roles) != 0 {
		t.Fatalf("Save without channels re-listed operators: %v", src.roles)
	}
}

func TestSave_WithChannelsRefreshesList(t *testing.T) {
	src := &fakeSource{}
	d := New(src, ledger.RoleCustomer, nil)

	id, err := d.Save(context.Background(), "Dan", "Alipay", " ", "Bank")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got := src.channels[0]; len(got) != 2 || got[0] != "Alipay" || got[1] != "Bank" {
		t.Fatalf("channels sent = %v, want [Alipay Bank]", got)
	}
	op, ok := d.Get(id)
	if !ok || len(op.Channels) != 2 || op.Channels[0].ID != 100 {
		t.Fatalf("Get(%d) = %#v, want refreshed channels", id, op)
	}
}

func TestSave_RejectsEmptyNameWithoutRequest(t *testing.T) {
	src := &fakeSource{}
	d := New(src, ledger.RoleCustomer, nil)

	_, err := d.Save(context.Background(), "   ")
	if ledger.Classify(err) != ledger.KindValidation {
		t.Fatalf("Classify = %v, want validation (err=%v)", ledger.Classify(err), err)
	}
	if len(src.added) != 0 {
		t.Fatalf("AddOperator called for empty name")
	}
}

func TestSave_FailureLeavesCache(t *testing.T) {
	src := &fakeSource{operators: []ledger.Operator{{ID: 1, Name: "Bob"}}}
	d := New(src, ledger.RoleCustomer, nil)
	_ = d.Load(context.Background())

	src.addErr = &ledger.APIError{Method: "POST", Path: ledger.PathAddOperator, Status: 400, Message: "operator already exists"}
	_, err := d.Save(context.Background(), "Bob")
	if got := ledger.Message(err, "failed"); got != "operator already exists" {
		t.Fatalf("Message = %q, want server message", got)
	}
	if ops := d.Operators(); len(ops) != 1 {
		t.Fatalf("Operators = %#v, want unchanged cache", ops)
	}
}

func TestSave_DuplicateNamesNotDeduplicated(t *testing.T) {
	src := &fakeSource{}
	d := New(src, ledger.RoleCustomer, nil)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Save(context.Background(), "Eve")
		}()
	}
	wg.Wait()

	if len(src.added) != 2 || len(d.Operators()) != 2 {
		t.Fatalf("added=%v cached=%d, want two creations", src.added, len(d.Operators()))
	}
}
