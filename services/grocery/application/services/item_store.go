package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/pricetrack/pkg/logger"
	"github.com/ghuser/pricetrack/pkg/money"
	"github.com/ghuser/pricetrack/pkg/telemetry"
	"github.com/ghuser/pricetrack/services/grocery/domain"
	"github.com/ghuser/pricetrack/services/grocery/domain/events"
	"github.com/ghuser/pricetrack/services/grocery/domain/models"
	"github.com/ghuser/pricetrack/services/grocery/domain/repositories"
	domainsvcs "github.com/ghuser/pricetrack/services/grocery/domain/services"
)

const instrumentationName = "github.com/ghuser/pricetrack/services/grocery"

// Publisher is the subset of events.EventBus the store needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// Option configures an ItemStore.
type Option func(*ItemStore)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *ItemStore) { s.now = now }
}

// WithIDGenerator overrides how new item ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *ItemStore) { s.newID = newID }
}

// WithPublisher sends a notification for every operation outcome.
func WithPublisher(p Publisher) Option {
	return func(s *ItemStore) { s.pub = p }
}

// WithCurrency sets the currency prices are rendered in within notifications.
func WithCurrency(code string) Option {
	return func(s *ItemStore) { s.currency = code }
}

type priceUpdate struct {
	itemID   string
	previous []models.PricePoint
}

// PendingUndo reports which undo operations currently have something to restore.
type PendingUndo struct {
	DeletedItemID string
	PriceItemID   string
}

// ItemStore owns the grocery collection. Every operation runs under one
// mutex, and the full collection is written through the repository after
// each successful mutation. A failed write never rolls back the in-memory
// change.
type ItemStore struct {
	mu       sync.Mutex
	repo     repositories.SnapshotRepository
	pub      Publisher
	log      logger.Logger
	now      func() time.Time
	newID    func() string
	currency string

	items map[string]*models.GroceryItem
	order []string

	lastDeleted     *models.GroceryItem
	lastPriceUpdate *priceUpdate

	tracer          trace.Tracer
	mutations       metric.Int64Counter
	persistFailures metric.Int64Counter
}

// NewItemStore returns an empty store. Call Load before serving requests.
func NewItemStore(repo repositories.SnapshotRepository, log logger.Logger, opts ...Option) *ItemStore {
	s := &ItemStore{
		repo:     repo,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
		currency: money.DefaultCurrency,
		items:    make(map[string]*models.GroceryItem),
		tracer:   otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}

	meter := otel.Meter(instrumentationName)
	var err error
	if s.mutations, err = meter.Int64Counter("pricetrack.store.mutations",
		metric.WithDescription("Successful Item Store mutations")); err != nil {
		log.Warn("failed to create mutations counter", "error", err)
		s.mutations = noop.Int64Counter{}
	}
	if s.persistFailures, err = meter.Int64Counter("pricetrack.store.persist_failures",
		metric.WithDescription("Snapshot writes that failed after a mutation")); err != nil {
		log.Warn("failed to create persist failures counter", "error", err)
		s.persistFailures = noop.Int64Counter{}
	}
	return s
}

// Load adopts the persisted collection. When nothing usable is stored the
// built-in seed data is adopted and written back instead; seeded reports
// whether that happened. Load never fails.
func (s *ItemStore) Load(ctx context.Context) (seeded bool) {
	ctx, span := s.tracer.Start(ctx, "ItemStore.Load")
	defer span.End()

	items, err := s.repo.Load(ctx)
	empty := err == nil && len(items) == 0
	if err == nil && !empty {
		err = domainsvcs.ValidateSnapshot(items)
	}

	var notes []events.Notification
	switch {
	case empty:
		s.log.InfoContext(ctx, "saved collection is empty, using seed data")
	case err == nil:
		s.mu.Lock()
		s.replace(items)
		s.mu.Unlock()
		s.log.InfoContext(ctx, "loaded saved items", "count", len(items))
		span.SetAttributes(attribute.Int("items", len(items)))
		return false
	case errors.Is(err, domain.ErrSnapshotNotFound):
		s.log.InfoContext(ctx, "no saved items, using seed data")
	default:
		s.log.WarnContext(ctx, "failed to load saved items, using seed data", "error", err)
		span.RecordError(err)
		notes = append(notes, s.note(events.LevelWarning,
			"Failed to load saved items", "There was an error loading your saved grocery items."))
	}

	s.mu.Lock()
	s.replace(models.SeedItems(s.today()))
	if perr := s.persist(ctx); perr != nil {
		notes = append(notes, s.saveFailed())
	}
	s.mu.Unlock()

	s.publish(ctx, notes...)
	span.SetAttributes(attribute.Bool("seeded", true))
	return true
}

// Add validates the input and inserts a new item with one price point dated today.
func (s *ItemStore) Add(ctx context.Context, name, store string, price decimal.Decimal) (models.GroceryItem, error) {
	ctx, span := s.tracer.Start(ctx, "ItemStore.Add")
	defer span.End()

	item, err := s.newItem(name, store, price)
	if err != nil {
		return s.fail(ctx, span, "add", err, "Failed to add item", "There was an error adding your grocery item.")
	}

	s.mu.Lock()
	if _, exists := s.items[item.ID]; exists {
		s.mu.Unlock()
		err = fmt.Errorf("%w: %s", domain.ErrItemAlreadyExists, item.ID)
		return s.fail(ctx, span, "add", err, "Failed to add item", "There was an error adding your grocery item.")
	}
	s.insert(item)
	out := item.Clone()
	perr := s.persist(ctx)
	s.mu.Unlock()

	n := s.note(events.LevelSuccess, "Item added successfully",
		fmt.Sprintf("%s has been added to your grocery list.", out.Name))
	n.ItemID = out.ID
	s.done(ctx, span, "add", perr, n)
	return out, nil
}

func (s *ItemStore) newItem(name, store string, price decimal.Decimal) (*models.GroceryItem, error) {
	itemName, err := models.NewItemName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItemName, err)
	}
	storeName, err := models.NewStoreName(store)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidStoreName, err)
	}
	if err := domainsvcs.ValidatePrice(price); err != nil {
		return nil, err
	}
	item := models.NewGroceryItem(s.newID(), itemName, storeName, price, s.today())
	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdatePrice appends a price point dated today to the item. The previous
// price history is kept for UndoPriceUpdate.
func (s *ItemStore) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (models.GroceryItem, error) {
	ctx, span := s.tracer.Start(ctx, "ItemStore.UpdatePrice", trace.WithAttributes(attribute.String("item_id", id)))
	defer span.End()

	const failTitle, failDesc = "Failed to update price", "There was an error updating the price."
	if err := domainsvcs.ValidatePrice(price); err != nil {
		return s.fail(ctx, span, "update_price", err, failTitle, failDesc)
	}

	s.mu.Lock()
	item, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return s.fail(ctx, span, "update_price", notFound(id), failTitle, failDesc)
	}
	s.lastPriceUpdate = &priceUpdate{itemID: id, previous: item.Clone().Prices}
	item.AppendPrice(price, s.today())
	out := item.Clone()
	perr := s.persist(ctx)
	s.mu.Unlock()

	n := s.note(events.LevelSuccess, "Price updated",
		fmt.Sprintf("The price for %s has been updated to %s.", out.Name, money.Format(price, s.currency)))
	n.ItemID, n.Undo = out.ID, events.UndoPrice
	s.done(ctx, span, "update_price", perr, n)
	return out, nil
}

// Delete removes the item. It is kept for UndoDelete.
func (s *ItemStore) Delete(ctx context.Context, id string) (models.GroceryItem, error) {
	ctx, span := s.tracer.Start(ctx, "ItemStore.Delete", trace.WithAttributes(attribute.String("item_id", id)))
	defer span.End()

	s.mu.Lock()
	item, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return s.fail(ctx, span, "delete", notFound(id), "Failed to delete item", "There was an error deleting the item.")
	}
	s.remove(id)
	s.lastDeleted = item
	out := item.Clone()
	perr := s.persist(ctx)
	s.mu.Unlock()

	n := s.note(events.LevelSuccess, "Item deleted",
		fmt.Sprintf("%s has been removed from your grocery list.", out.Name))
	n.ItemID, n.Undo = out.ID, events.UndoDelete
	s.done(ctx, span, "delete", perr, n)
	return out, nil
}

// UndoDelete re-inserts the last deleted item at the end of the listing.
// The undo buffer is cleared whether or not the restore happens.
func (s *ItemStore) UndoDelete(ctx context.Context) (models.GroceryItem, error) {
	ctx, span := s.tracer.Start(ctx, "ItemStore.UndoDelete")
	defer span.End()

	const failTitle, failDesc = "Failed to restore item", "There was an error restoring the deleted item."

	s.mu.Lock()
	item := s.lastDeleted
	s.lastDeleted = nil
	if item == nil {
		s.mu.Unlock()
		return s.fail(ctx, span, "undo_delete", fmt.Errorf("%w: no deleted item", domain.ErrNothingToUndo), failTitle, failDesc)
	}
	if _, exists := s.items[item.ID]; exists {
		s.mu.Unlock()
		return s.fail(ctx, span, "undo_delete", fmt.Errorf("%w: %s", domain.ErrItemAlreadyExists, item.ID), failTitle, failDesc)
	}
	s.insert(item)
	out := item.Clone()
	perr := s.persist(ctx)
	s.mu.Unlock()

	n := s.note(events.LevelSuccess, "Item restored",
		fmt.Sprintf("%s has been restored to your grocery list.", out.Name))
	n.ItemID = out.ID
	s.done(ctx, span, "undo_delete", perr, n)
	return out, nil
}

// UndoPriceUpdate restores the price history captured by the last
// UpdatePrice. The undo buffer is cleared whether or not the restore happens.
func (s *ItemStore) UndoPriceUpdate(ctx context.Context) (models.GroceryItem, error) {
	ctx, span := s.tracer.Start(ctx, "ItemStore.UndoPriceUpdate")
	defer span.End()

	const failTitle, failDesc = "Failed to undo price update", "There was an error restoring the previous price."

	s.mu.Lock()
	pending := s.lastPriceUpdate
	s.lastPriceUpdate = nil
	if pending == nil {
		s.mu.Unlock()
		return s.fail(ctx, span, "undo_price", fmt.Errorf("%w: no price update", domain.ErrNothingToUndo), failTitle, failDesc)
	}
	item, ok := s.items[pending.itemID]
	if !ok {
		s.mu.Unlock()
		return s.fail(ctx, span, "undo_price", notFound(pending.itemID), failTitle, failDesc)
	}
	item.Prices = pending.previous
	out := item.Clone()
	perr := s.persist(ctx)
	s.mu.Unlock()

	n := s.note(events.LevelSuccess, "Price update undone",
		fmt.Sprintf("The price update for %s has been reversed.", out.Name))
	n.ItemID = out.ID
	s.done(ctx, span, "undo_price", perr, n)
	return out, nil
}

// Get returns a copy of one item.
func (s *ItemStore) Get(id string) (models.GroceryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.GroceryItem{}, notFound(id)
	}
	return item.Clone(), nil
}

// Snapshot returns a deep copy of the collection in listing order.
func (s *ItemStore) Snapshot() []models.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Search returns the items whose name or store contains term, ignoring case.
// An empty term matches everything.
func (s *ItemStore) Search(term string) []models.GroceryItem {
	term = strings.ToLower(strings.TrimSpace(term))
	all := s.Snapshot()
	if term == "" {
		return all
	}
	out := make([]models.GroceryItem, 0, len(all))
	for _, item := range all {
		if strings.Contains(strings.ToLower(item.Name.String()), term) ||
			strings.Contains(strings.ToLower(item.Store.String()), term) {
			out = append(out, item)
		}
	}
	return out
}

// PendingUndo reports the targets of the undo buffers.
func (s *ItemStore) PendingUndo() PendingUndo {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p PendingUndo
	if s.lastDeleted != nil {
		p.DeletedItemID = s.lastDeleted.ID
	}
	if s.lastPriceUpdate != nil {
		p.PriceItemID = s.lastPriceUpdate.itemID
	}
	return p
}

// Compare builds a comparison over the current collection for the preset window.
func (s *ItemStore) Compare(preset domainsvcs.Preset) *domainsvcs.Comparison {
	items := s.Snapshot()
	return domainsvcs.NewComparison(items, domainsvcs.ResolveWindow(items, preset, s.today()))
}

// Currency is the code prices are rendered in.
func (s *ItemStore) Currency() string { return s.currency }

func (s *ItemStore) today() models.Date { return models.DateOf(s.now()) }

// The helpers below expect s.mu to be held.

func (s *ItemStore) replace(items []models.GroceryItem) {
	s.items = make(map[string]*models.GroceryItem, len(items))
	s.order = s.order[:0]
	for i := range items {
		item := items[i].Clone()
		s.insert(&item)
	}
	s.lastDeleted, s.lastPriceUpdate = nil, nil
}

func (s *ItemStore) insert(item *models.GroceryItem) {
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
}

func (s *ItemStore) remove(id string) {
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *ItemStore) snapshot() []models.GroceryItem {
	out := make([]models.GroceryItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	return out
}

func (s *ItemStore) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.snapshot()); err != nil {
		s.persistFailures.Add(ctx, 1)
		s.log.ErrorContext(ctx, "failed to save items", "error", err)
		telemetry.CaptureError(ctx, err)
		return err
	}
	return nil
}

func (s *ItemStore) saveFailed() events.Notification {
	return s.note(events.LevelWarning, "Failed to save items", "There was an error saving your grocery items.")
}

func (s *ItemStore) done(ctx context.Context, span trace.Span, op string, persistErr error, n events.Notification) {
	s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	notes := []events.Notification{n}
	if persistErr != nil {
		span.RecordError(persistErr)
		notes = append(notes, s.saveFailed())
	}
	s.log.InfoContext(ctx, "item store mutation", "op", op, "item_id", n.ItemID)
	s.publish(ctx, notes...)
}

// fail records err on the span and publishes a failure notification.
// Validation errors are returned without a notification.
func (s *ItemStore) fail(ctx context.Context, span trace.Span, op string, err error, title, desc string) (models.GroceryItem, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if isValidation(err) {
		s.log.DebugContext(ctx, "item store rejected input", "op", op, "error", err)
		return models.GroceryItem{}, err
	}
	s.log.WarnContext(ctx, "item store operation failed", "op", op, "error", err)
	s.publish(ctx, s.note(events.LevelError, title, desc))
	return models.GroceryItem{}, err
}

func (s *ItemStore) note(level events.Level, title, desc string) events.Notification {
	return events.NewNotification(level, title, desc, s.now())
}

func (s *ItemStore) publish(ctx context.Context, notes ...events.Notification) {
	if s.pub == nil || len(notes) == 0 {
		return
	}
	msgs := make([]*message.Message, 0, len(notes))
	for _, n := range notes {
		payload, err := json.Marshal(n)
		if err != nil {
			s.log.ErrorContext(ctx, "failed to marshal notification", "error", err)
			continue
		}
		msg := message.NewMessage(n.EventID.String(), payload)
		msg.Metadata.Set("event_id", n.EventID.String())
		msg.Metadata.Set("event_version", strconv.Itoa(n.Version))
		msgs = append(msgs, msg)
	}
	if err := s.pub.Publish(ctx, events.TopicNotifications, msgs...); err != nil {
		s.log.WarnContext(ctx, "failed to publish notifications", "error", err, "count", len(msgs))
	}
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
}

func isValidation(err error) bool {
	return errors.Is(err, domain.ErrInvalidItemName) ||
		errors.Is(err, domain.ErrInvalidStoreName) ||
		errors.Is(err, domain.ErrInvalidPrice)
}
