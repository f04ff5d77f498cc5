package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/accounts"
	"github.com/mcdev12/overworld/go/internal/models"
)

func TestInventoryEndpoints(t *testing.T) {
	id := uuid.New()
	repo := newMemRepo(id)
	app := NewApp(repo, testItems)
	account := &models.Account{ID: id}
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(accounts.WithAccount(r.Context(), account)))
		})
	}
	mux := http.NewServeMux()
	NewService(app, auth).RegisterRoutes(mux)

	if _, err := app.Add(t.Context(), id, "apple", nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	var slots []SlotView
	if err := json.NewDecoder(rec.Body).Decode(&slots); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(slots) != models.InventorySize {
		t.Fatalf("expected %d slots, got %d", models.InventorySize, len(slots))
	}
	if slots[0].Item == nil || slots[0].Name != "Apple" || slots[1].Item != nil {
		t.Fatalf("unexpected slots %+v", slots[:2])
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/move", strings.NewReader(`{"from":0,"to":25}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad slot, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/sell", strings.NewReader(`{"slot":0}`)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"newBalance":2`) {
		t.Fatalf("expected sale, got %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/give", strings.NewReader(`{"slot":0}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without recipient, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))
	if !strings.Contains(rec.Body.String(), `"gem"`) {
		t.Fatalf("expected catalog, got %s", rec.Body.String())
	}
}

func TestGiveIntoFirstSlotReportsSlotZero(t *testing.T) {
	id, friend := uuid.New(), uuid.New()
	repo := newMemRepo(id, friend)
	app := NewApp(repo, testItems)
	account := &models.Account{ID: id}
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(accounts.WithAccount(r.Context(), account)))
		})
	}
	mux := http.NewServeMux()
	NewService(app, auth).RegisterRoutes(mux)

	if _, err := app.Add(t.Context(), id, "apple", nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	body := `{"slot":0,"toAccountId":"` + friend.String() + `"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory/give", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"toSlot":0`) {
		t.Fatalf("expected toSlot 0 in response, got %s", rec.Body.String())
	}

	var result GiveResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Success || result.ToSlot != 0 {
		t.Fatalf("expected success into slot 0, got %+v", result)
	}
}
