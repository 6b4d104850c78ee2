package kds

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type fakeClient struct {
	mu       sync.Mutex
	messages [][]byte
	fail     bool
	closed   bool
}

func (f *fakeClient) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, raw := range f.messages {
		var msg Message
		if err := json.Unmarshal(raw, &msg); err == nil {
			out = append(out, msg.Event)
		}
	}
	return out
}

func (f *fakeClient) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// stuckClient never finishes a write until it is closed.
type stuckClient struct {
	release chan struct{}
	once    sync.Once
}

func (s *stuckClient) WriteMessage(int, []byte) error {
	<-s.release
	return errors.New("connection closed")
}

func (s *stuckClient) Close() error {
	s.once.Do(func() { close(s.release) })
	return nil
}

var manager = Subscriber{Role: models.RoleManager}

func TestBroadcastOrderCreated(t *testing.T) {
	utils.InitLogger()
	hub := NewHub()
	good, bad := &fakeClient{}, &fakeClient{fail: true}
	hub.Register(good, Subscriber{Role: models.RoleCashier, BranchID: "b1"})
	hub.Register(bad, manager)

	hub.BroadcastOrderCreated(models.Order{ID: "ORD-1", BranchID: "b1", Total: 42})

	require.Eventually(t, func() bool { return len(good.events()) == 1 }, time.Second, 5*time.Millisecond)
	good.mu.Lock()
	var msg struct {
		Event string       `json:"event"`
		Data  models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(good.messages[0], &msg))
	good.mu.Unlock()
	assert.Equal(t, EventOrderCreated, msg.Event)
	assert.Equal(t, "ORD-1", msg.Data.ID)

	require.Eventually(t, bad.isClosed, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, hub.Count())

	hub.Unregister(good)
	hub.Unregister(good)
	assert.True(t, good.isClosed())
	assert.Equal(t, 0, hub.Count())
}

func TestBroadcastScopesByRoleAndBranch(t *testing.T) {
	utils.InitLogger()
	hub := NewHub()
	back := &fakeClient{}
	sameBranch := &fakeClient{}
	otherBranch := &fakeClient{}
	hub.Register(back, manager)
	hub.Register(sameBranch, Subscriber{Role: models.RoleCashier, BranchID: "b1"})
	hub.Register(otherBranch, Subscriber{Role: models.RoleCashier, BranchID: "b2"})

	hub.BroadcastNotification(models.Notification{ID: "NTF-1", BranchID: "b1"})
	hub.BroadcastOrderCreated(models.Order{ID: "ORD-1", BranchID: "b1"})
	hub.BroadcastCustomerUpdate(models.Customer{ID: "cust-1", Phone: "01711"})
	hub.BroadcastDashboardUpdate(map[string]int{"orders": 1})
	hub.BroadcastOrderUpdate(models.Order{ID: "ORD-2", BranchID: "b2"})

	want := []string{EventNotification, EventOrderCreated, EventCustomerUpdate, EventDashboardUpdate, EventOrderUpdate}
	require.Eventually(t, func() bool { return len(back.events()) == len(want) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, want, back.events())

	require.Eventually(t, func() bool { return len(sameBranch.events()) == 2 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(otherBranch.events()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{EventNotification, EventOrderCreated}, sameBranch.events())
	assert.Equal(t, []string{EventOrderUpdate}, otherBranch.events())
}

func TestStalledClientDoesNotBlockBroadcast(t *testing.T) {
	utils.InitLogger()
	hub := NewHub()
	stuck := &stuckClient{release: make(chan struct{})}
	hub.Register(stuck, manager)

	done := make(chan struct{})
	go func() {
		for i := 0; i < SendBuffer+10; i++ {
			hub.BroadcastOrderCreated(models.Order{ID: "ORD-1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a stalled client")
	}

	assert.Equal(t, 0, hub.Count())

	healthy := &fakeClient{}
	hub.Register(healthy, manager)
	hub.BroadcastOrderCreated(models.Order{ID: "ORD-2"})
	require.Eventually(t, func() bool { return len(healthy.events()) == 1 }, time.Second, 5*time.Millisecond)
}
