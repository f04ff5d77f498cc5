package worldclient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/internal/models"
)

type fakeAPI struct {
	mu       sync.Mutex
	posts    []StateUpdate
	postErr  error
	listErr  error
	players  []models.PlayerState
	response StateResponse
}

func (f *fakeAPI) PostState(ctx context.Context, upd StateUpdate) (*StateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, upd)
	if f.postErr != nil {
		return nil, f.postErr
	}
	resp := f.response
	return &resp, nil
}

func (f *fakeAPI) ListPlayers(ctx context.Context) ([]models.PlayerState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.players, nil
}

func TestTickPostsLocalStateAndReplacesView(t *testing.T) {
	api := &fakeAPI{players: []models.PlayerState{{AccountID: uuid.New(), Name: "ada"}}}
	p := NewPoller(api, clockwork.NewFakeClock(), 0, models.Position{X: 10, Y: 20}, "2")

	p.Tick(t.Context())
	if len(api.posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(api.posts))
	}
	post := api.posts[0]
	if *post.X != 10 || *post.Y != 20 || *post.Skin != "2" || post.Chat != nil {
		t.Fatalf("unexpected post %+v", post)
	}
	if len(p.Players()) != 1 {
		t.Fatalf("expected 1 player, got %d", len(p.Players()))
	}

	api.players = nil
	p.Tick(t.Context())
	if len(p.Players()) != 0 {
		t.Fatalf("expected the view overwritten wholesale, got %d", len(p.Players()))
	}
}

func TestChatIsSentOnce(t *testing.T) {
	api := &fakeAPI{}
	p := NewPoller(api, clockwork.NewFakeClock(), 0, models.Position{}, "")
	p.Say("hello")

	p.Tick(t.Context())
	p.Tick(t.Context())

	if api.posts[0].Chat == nil || *api.posts[0].Chat != "hello" {
		t.Fatalf("expected chat on first post, got %+v", api.posts[0])
	}
	if api.posts[1].Chat != nil {
		t.Fatalf("expected no chat on second post")
	}
	if api.posts[0].Skin != nil {
		t.Fatalf("expected empty skin omitted")
	}
}

func TestTeleportOverwritesLocalPosition(t *testing.T) {
	api := &fakeAPI{response: StateResponse{Bubble: "whoosh", Teleport: &models.Position{X: 9600, Y: 8960}}}
	p := NewPoller(api, clockwork.NewFakeClock(), 0, models.Position{X: 1, Y: 1}, "")
	p.Say("/home")

	p.Tick(t.Context())
	if got := p.Position(); got.X != 9600 || got.Y != 8960 {
		t.Fatalf("expected teleport applied, got %+v", got)
	}
	if p.Bubble() != "whoosh" {
		t.Fatalf("expected bubble, got %q", p.Bubble())
	}
}

func TestFailuresAreSkippedWithoutRetry(t *testing.T) {
	previous := []models.PlayerState{{Name: "old"}}
	api := &fakeAPI{postErr: errors.New("down"), listErr: errors.New("down")}
	p := NewPoller(api, clockwork.NewFakeClock(), 0, models.Position{}, "")
	p.players = previous

	p.Tick(t.Context())
	if len(api.posts) != 1 {
		t.Fatalf("expected a single attempt, got %d", len(api.posts))
	}
	if got := p.Players(); len(got) != 1 || got[0].Name != "old" {
		t.Fatalf("expected previous view kept on failure, got %+v", got)
	}
}

func TestRunTicksOnInterval(t *testing.T) {
	api := &fakeAPI{}
	clock := clockwork.NewFakeClock()
	p := NewPoller(api, clock, 100*time.Millisecond, models.Position{}, "")

	updates := make(chan int, 4)
	p.OnUpdate(func(players []models.PlayerState) { updates <- len(players) })

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go p.Run(ctx)

	for i := 0; i < 3; i++ {
		if err := clock.BlockUntilContext(ctx, 1); err != nil {
			t.Fatalf("waiting for ticker: %v", err)
		}
		clock.Advance(100 * time.Millisecond)
		select {
		case <-updates:
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d did not run", i)
		}
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(api.posts))
	}
}
