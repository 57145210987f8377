package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/pricetrack/pkg/config"
	"github.com/ghuser/pricetrack/pkg/logger"
	"github.com/ghuser/pricetrack/services/grocery/application/api"
	"github.com/ghuser/pricetrack/services/grocery/application/handlers"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence/memory"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// feedPublisher hands notifications straight to the feed.
type feedPublisher struct{ feed *appsvcs.NotificationFeed }

func (p feedPublisher) Publish(ctx context.Context, _ string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		if err := p.feed.Handle(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewWithWriter(&config.Config{LogLevel: "error"}, io.Discard)
	feed := appsvcs.NewNotificationFeed(20)
	repo := persistence.NewSnapshotRepository(memory.NewStore(), "")
	store := appsvcs.NewItemStore(repo, log,
		appsvcs.WithClock(func() time.Time { return fixedNow }),
		appsvcs.WithPublisher(feedPublisher{feed: feed}),
	)
	store.Load(context.Background())

	r := chi.NewRouter()
	api.GroceryRoutes(r, &appsvcs.Services{Store: store, Feed: feed}, false)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestListItems(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/items", "")
	expectStatus(t, rec, http.StatusOK)
	all := decode[handlers.ListItemsResponse](t, rec)
	if all.Count != 9 || len(all.Items) != 9 {
		t.Fatalf("expected 9 seed items, got %d", all.Count)
	}

	rec = do(t, h, http.MethodGet, "/items?q=kroger", "")
	expectStatus(t, rec, http.StatusOK)
	kroger := decode[handlers.ListItemsResponse](t, rec)
	if kroger.Count != 3 {
		t.Fatalf("expected 3 Kroger items, got %d", kroger.Count)
	}
	for _, item := range kroger.Items {
		if item.Store != "Kroger" {
			t.Errorf("unexpected store %q", item.Store)
		}
	}
}

func TestListItems_DerivedViews(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/items/milk-kroger", "")
	expectStatus(t, rec, http.StatusOK)
	item := decode[handlers.ItemResponse](t, rec)

	if item.Latest == nil || item.Latest.Price.Display != "$3.19" || string(item.Latest.Price.Amount) != "3.19" {
		t.Fatalf("unexpected latest %+v", item.Latest)
	}
	if item.Change == nil || item.Change.Direction != "down" || item.Change.Amount.Display != "-$0.10" || item.Change.Percent != "-3.0%" {
		t.Fatalf("unexpected change %+v", item.Change)
	}
	if len(item.Prices) != 6 || item.Prices[0].Date > item.Prices[5].Date {
		t.Fatalf("expected date-ordered history, got %+v", item.Prices)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/items/nope", "")
	expectStatus(t, rec, http.StatusNotFound)
	if body := decode[handlers.ErrorResponse](t, rec); !strings.Contains(body.Error, "item not found") {
		t.Fatalf("unexpected error %q", body.Error)
	}
}

func TestPostItem(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/items", `{"name":"Cheese","store":"Acme","price":3.199}`)
	expectStatus(t, rec, http.StatusCreated)
	item := decode[handlers.ItemResponse](t, rec)
	if item.ID == "" || item.Name != "Cheese" || len(item.Prices) != 1 {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.Prices[0].Date != "2025-06-15" || string(item.Prices[0].Price.Amount) != "3.199" ||
		item.Prices[0].Price.Display != "$3.20" {
		t.Fatalf("unexpected price point %+v", item.Prices[0])
	}
	if item.Change != nil {
		t.Error("a single price point has no change")
	}

	rec = do(t, h, http.MethodGet, "/items?q=cheese", "")
	if got := decode[handlers.ListItemsResponse](t, rec); got.Count != 1 {
		t.Fatalf("expected new item to be listed, got %d", got.Count)
	}
}

func TestPostItem_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  int
		field string
	}{
		{"malformed json", `{"name":`, http.StatusBadRequest, ""},
		{"unknown field", `{"name":"Cheese","store":"Acme","price":4,"qty":2}`, http.StatusBadRequest, ""},
		{"short name", `{"name":"C","store":"Acme","price":4}`, http.StatusUnprocessableEntity, "name"},
		{"missing store", `{"name":"Cheese","price":4}`, http.StatusUnprocessableEntity, "store"},
		{"zero price", `{"name":"Cheese","store":"Acme","price":0}`, http.StatusUnprocessableEntity, "price"},
		{"negative price", `{"name":"Cheese","store":"Acme","price":-2}`, http.StatusUnprocessableEntity, "price"},
		{"name too short once trimmed", `{"name":"  C  ","store":"Acme","price":4}`, http.StatusUnprocessableEntity, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestRouter(t), http.MethodPost, "/items", tt.body)
			expectStatus(t, rec, tt.want)
			if tt.field == "" {
				return
			}
			body := decode[struct {
				Fields map[string]string `json:"fields"`
			}](t, rec)
			if _, ok := body.Fields[tt.field]; !ok {
				t.Fatalf("expected error for field %q, got %v", tt.field, body.Fields)
			}
		})
	}
}

func TestPriceUpdateAndUndo(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/items/milk-kroger/prices", `{"price":"2.99"}`)
	expectStatus(t, rec, http.StatusOK)
	item := decode[handlers.ItemResponse](t, rec)
	if len(item.Prices) != 7 || item.Latest.Price.Display != "$2.99" || item.Latest.Date != "2025-06-15" {
		t.Fatalf("unexpected item after update %+v", item)
	}

	rec = do(t, h, http.MethodGet, "/items", "")
	if undo := decode[handlers.ListItemsResponse](t, rec).Undo; undo.PriceItemID != "milk-kroger" {
		t.Fatalf("expected pending price undo, got %+v", undo)
	}

	rec = do(t, h, http.MethodPost, "/items/undo-price", "")
	expectStatus(t, rec, http.StatusOK)
	if item := decode[handlers.ItemResponse](t, rec); len(item.Prices) != 6 || item.Latest.Price.Display != "$3.19" {
		t.Fatalf("unexpected item after undo %+v", item)
	}

	expectStatus(t, do(t, h, http.MethodPost, "/items/undo-price", ""), http.StatusConflict)
}

func TestPriceUpdate_Errors(t *testing.T) {
	h := newTestRouter(t)
	expectStatus(t, do(t, h, http.MethodPost, "/items/nope/prices", `{"price":1}`), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodPost, "/items/milk-kroger/prices", `{"price":0}`), http.StatusUnprocessableEntity)
	expectStatus(t, do(t, h, http.MethodPost, "/items/milk-kroger/prices", ""), http.StatusBadRequest)
}

func TestDeleteAndUndo(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodDelete, "/items/eggs-target", "")
	expectStatus(t, rec, http.StatusOK)
	deleted := decode[handlers.ItemResponse](t, rec)

	expectStatus(t, do(t, h, http.MethodGet, "/items/eggs-target", ""), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodDelete, "/items/eggs-target", ""), http.StatusNotFound)

	rec = do(t, h, http.MethodPost, "/items/undo-delete", "")
	expectStatus(t, rec, http.StatusOK)
	restored := decode[handlers.ItemResponse](t, rec)
	if restored.ID != deleted.ID || len(restored.Prices) != len(deleted.Prices) {
		t.Fatalf("expected identical item, got %+v want %+v", restored, deleted)
	}
	for i := range deleted.Prices {
		if restored.Prices[i] != deleted.Prices[i] {
			t.Fatalf("history differs at %d: %+v vs %+v", i, restored.Prices[i], deleted.Prices[i])
		}
	}

	expectStatus(t, do(t, h, http.MethodPost, "/items/undo-delete", ""), http.StatusConflict)
}

func TestComparison(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/comparison", "")
	expectStatus(t, rec, http.StatusOK)
	cmp := decode[handlers.ComparisonResponse](t, rec)

	if cmp.Window.Preset != "all" || cmp.Window.End != "2025-06-12" {
		t.Fatalf("unexpected window %+v", cmp.Window)
	}
	if strings.Join(cmp.Stores, ",") != "Walmart,Target,Kroger" {
		t.Fatalf("unexpected stores %v", cmp.Stores)
	}
	if len(cmp.Rows) != 3 || cmp.Rows[0].Name != "Milk" {
		t.Fatalf("unexpected rows %+v", cmp.Rows)
	}
	milk := cmp.Rows[0]
	if milk.Best == nil || milk.Best.Store != "Kroger" || string(milk.Best.Price.Amount) != "3.19" {
		t.Fatalf("unexpected Milk best %+v", milk.Best)
	}
	// Milk 3.49-3.19, Bread 2.69-2.39, Eggs 4.19-3.79.
	if cmp.TotalSavings.Display != "$1.00" {
		t.Fatalf("unexpected total savings %+v", cmp.TotalSavings)
	}
	if len(cmp.Savings) != 3 {
		t.Fatalf("expected 3 savings entries, got %d", len(cmp.Savings))
	}
}

func TestComparison_Windows(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/comparison?window=week", "")
	expectStatus(t, rec, http.StatusOK)
	cmp := decode[handlers.ComparisonResponse](t, rec)
	if cmp.Window.Start != "2025-06-05" || cmp.Window.End != "2025-06-12" {
		t.Fatalf("unexpected week window %+v", cmp.Window)
	}
	for _, sp := range cmp.Rows[0].Prices {
		if sp.Store == "Kroger" && sp.Price != nil {
			t.Errorf("Milk at Kroger is outside the week window, got %+v", sp.Price)
		}
	}

	expectStatus(t, do(t, h, http.MethodGet, "/comparison?window=decade", ""), http.StatusBadRequest)
}

func TestNotifications(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/notifications", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[handlers.NotificationsResponse](t, rec); len(got.Notifications) != 0 {
		t.Fatalf("expected no notifications after a clean seed, got %+v", got.Notifications)
	}

	do(t, h, http.MethodDelete, "/items/bread-kroger", "")
	do(t, h, http.MethodPost, "/items/undo-delete", "")

	rec = do(t, h, http.MethodGet, "/notifications", "")
	got := decode[handlers.NotificationsResponse](t, rec).Notifications
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Title != "Item restored" || got[1].Title != "Item deleted" {
		t.Fatalf("expected newest first, got %q then %q", got[0].Title, got[1].Title)
	}
	if got[1].Undo != "delete" || got[1].ItemID != "bread-kroger" {
		t.Fatalf("unexpected delete notification %+v", got[1])
	}
}
