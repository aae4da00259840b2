package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"e-kasir/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrDraftNotFound = errors.New("draft cart not found")
	ErrNoActiveDraft = errors.New("no active draft cart")
)

// CartItem is a catalog product plus the quantity sitting in a cart.
type CartItem struct {
	models.Product
	Quantity int `json:"quantity"`
}

// DraftCart is an independently named, in-progress shopping cart.
// Several may exist at once; exactly one is active.
type DraftCart struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []CartItem `json:"items"`
}

// Manager owns every draft cart on this register. Mutations happen
// in memory first and are then snapshotted to the store without
// blocking the caller; memory stays the source of truth.
type Manager struct {
	mu       sync.Mutex
	drafts   []*DraftCart
	activeID string
	seq      int
	store    Store
}

// NewManager restores drafts from the store, or starts with a single
// empty session when nothing was saved. A draft always exists once
// the register is live.
func NewManager(store Store) *Manager {
	m := &Manager{store: store}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	snap, err := store.Load(ctx)
	if err != nil {
		zap.L().Warn("could not restore draft carts, starting fresh", zap.Error(err))
	}
	if snap != nil && len(snap.Drafts) > 0 {
		for i := range snap.Drafts {
			d := snap.Drafts[i]
			m.drafts = append(m.drafts, &d)
		}
		m.activeID = snap.ActiveID
		m.seq = snap.Seq
		if m.findDraft(m.activeID) == nil {
			m.activeID = m.drafts[0].ID
		}
		return m
	}

	m.createDraftLocked("")
	return m
}

// CreateDraft appends an empty draft and makes it active. An empty
// name gets the next "Sesi N" label.
func (m *Manager) CreateDraft(name string) DraftCart {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.createDraftLocked(name)
	m.persistLocked()
	return *d
}

func (m *Manager) createDraftLocked(name string) *DraftCart {
	m.seq++
	if name == "" {
		name = fmt.Sprintf("Sesi %d", m.seq)
	}
	d := &DraftCart{
		ID:    uuid.NewString(),
		Name:  name,
		Items: []CartItem{},
	}
	m.drafts = append(m.drafts, d)
	m.activeID = d.ID
	return d
}

// Drafts returns a copy of every draft in creation order.
func (m *Manager) Drafts() []DraftCart {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]DraftCart, 0, len(m.drafts))
	for _, d := range m.drafts {
		out = append(out, m.copyDraftLocked(d))
	}
	return out
}

// ActiveID reports which draft is currently rendered and checked out.
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// Active returns the active draft.
func (m *Manager) Active() (DraftCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.findDraft(m.activeID)
	if d == nil {
		return DraftCart{}, ErrNoActiveDraft
	}
	return m.copyDraftLocked(d), nil
}

// Get returns one draft by id.
func (m *Manager) Get(draftID string) (DraftCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.findDraft(draftID)
	if d == nil {
		return DraftCart{}, ErrDraftNotFound
	}
	return m.copyDraftLocked(d), nil
}

// SwitchDraft changes the active pointer. No cart data is touched.
func (m *Manager) SwitchDraft(draftID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findDraft(draftID) == nil {
		return ErrDraftNotFound
	}
	m.activeID = draftID
	m.persistLocked()
	return nil
}

// DeleteDraft removes a draft. When the active one goes, activation
// falls to the first remaining draft; deleting the last draft
// synthesizes a fresh empty session so one always exists.
func (m *Manager) DeleteDraft(draftID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, d := range m.drafts {
		if d.ID == draftID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrDraftNotFound
	}

	m.drafts = append(m.drafts[:idx], m.drafts[idx+1:]...)

	if len(m.drafts) == 0 {
		m.createDraftLocked("")
	} else if m.activeID == draftID {
		m.activeID = m.drafts[0].ID
	}

	m.persistLocked()
	return nil
}

// AddToCart puts one unit of a product into a draft. A product already
// in the cart gets its quantity bumped instead of a duplicate line.
// An empty draftID targets the active draft.
func (m *Manager) AddToCart(draftID string, product models.Product) (DraftCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.resolveDraftLocked(draftID)
	if err != nil {
		return DraftCart{}, err
	}

	found := false
	for i := range d.Items {
		if d.Items[i].Product.ID == product.ID {
			d.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		d.Items = append(d.Items, CartItem{Product: product, Quantity: 1})
	}

	m.persistLocked()
	return m.copyDraftLocked(d), nil
}

// SetQuantity replaces a line's quantity. Zero or below removes the
// line entirely; a non-positive quantity is never stored.
func (m *Manager) SetQuantity(draftID string, productID uint, qty int) (DraftCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.resolveDraftLocked(draftID)
	if err != nil {
		return DraftCart{}, err
	}

	if qty <= 0 {
		m.removeItemLocked(d, productID)
	} else {
		for i := range d.Items {
			if d.Items[i].Product.ID == productID {
				d.Items[i].Quantity = qty
				break
			}
		}
	}

	m.persistLocked()
	return m.copyDraftLocked(d), nil
}

// RemoveFromCart drops one line from a draft.
func (m *Manager) RemoveFromCart(draftID string, productID uint) (DraftCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.resolveDraftLocked(draftID)
	if err != nil {
		return DraftCart{}, err
	}

	m.removeItemLocked(d, productID)
	m.persistLocked()
	return m.copyDraftLocked(d), nil
}

// ClearCart empties a draft without deleting the session.
func (m *Manager) ClearCart(draftID string) (DraftCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.resolveDraftLocked(draftID)
	if err != nil {
		return DraftCart{}, err
	}

	d.Items = []CartItem{}
	m.persistLocked()
	return m.copyDraftLocked(d), nil
}

func (m *Manager) findDraft(id string) *DraftCart {
	for _, d := range m.drafts {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (m *Manager) resolveDraftLocked(draftID string) (*DraftCart, error) {
	if draftID == "" {
		d := m.findDraft(m.activeID)
		if d == nil {
			return nil, ErrNoActiveDraft
		}
		return d, nil
	}
	d := m.findDraft(draftID)
	if d == nil {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

func (m *Manager) removeItemLocked(d *DraftCart, productID uint) {
	items := d.Items[:0]
	for _, it := range d.Items {
		if it.Product.ID != productID {
			items = append(items, it)
		}
	}
	d.Items = items
}

func (m *Manager) copyDraftLocked(d *DraftCart) DraftCart {
	out := DraftCart{ID: d.ID, Name: d.Name, Items: make([]CartItem, len(d.Items))}
	copy(out.Items, d.Items)
	return out
}

// persistLocked snapshots the drafts to the store without holding up
// the caller. A failed save is only logged; the in-memory state
// remains authoritative until the next successful write.
func (m *Manager) persistLocked() {
	snap := &Snapshot{
		Drafts:   make([]DraftCart, 0, len(m.drafts)),
		ActiveID: m.activeID,
		Seq:      m.seq,
	}
	for _, d := range m.drafts {
		snap.Drafts = append(snap.Drafts, m.copyDraftLocked(d))
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := m.store.Save(ctx, snap); err != nil {
			zap.L().Warn("draft snapshot save failed", zap.Error(err))
		}
	}()
}
