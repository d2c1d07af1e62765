package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	users      map[string]*domain.User
	nextID     int
	roleWrites int // number of UpdateRole calls
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprint(r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

// seed stores a user with a fixed id.
func (r *stubUserRepo) seed(id string, role domain.Role) *domain.User {
	u := &domain.User{ID: id, Name: "user " + id, Email: id + "@example.com", Role: role}
	r.users[id] = u
	return u
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	stored, ok := r.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.Name = u.Name
	stored.Whatsapp = u.Whatsapp
	stored.UpdatedAt = u.UpdatedAt
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	stored, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.roleWrites++
	stored.Role = role
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubBusinessRepo struct {
	byID   map[string]*domain.Business
	nextID int
}

func newStubBusinessRepo() *stubBusinessRepo {
	return &stubBusinessRepo{byID: make(map[string]*domain.Business)}
}

func (r *stubBusinessRepo) Create(_ context.Context, b *domain.Business) (*domain.Business, error) {
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Name, b.Name) {
			return nil, domain.ErrBusinessExists
		}
	}
	r.nextID++
	clone := *b
	clone.ID = fmt.Sprintf("b%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBusinessRepo) FindByID(_ context.Context, id string) (*domain.Business, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	clone := *b
	return &clone, nil
}

// FindByIDAndOwner mirrors the single scoped Mongo query.
func (r *stubBusinessRepo) FindByIDAndOwner(_ context.Context, id, ownerID string) (*domain.Business, error) {
	b, ok := r.byID[id]
	if !ok || b.OwnerID != ownerID {
		return nil, domain.ErrBusinessNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBusinessRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Business, error) {
	return r.filter(func(b *domain.Business) bool { return b.OwnerID == ownerID }), nil
}

func (r *stubBusinessRepo) ListByCategory(_ context.Context, c domain.Category) ([]*domain.Business, error) {
	return r.filter(func(b *domain.Business) bool { return b.Category == c }), nil
}

func (r *stubBusinessRepo) filter(keep func(*domain.Business) bool) []*domain.Business {
	out := []*domain.Business{}
	for _, b := range r.byID {
		if keep(b) {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubBusinessRepo) Update(_ context.Context, b *domain.Business) error {
	if _, ok := r.byID[b.ID]; !ok {
		return domain.ErrBusinessNotFound
	}
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBusinessRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBusinessNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubItemRepo struct {
	byID   map[string]*domain.Item
	nextID int
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{byID: make(map[string]*domain.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, it *domain.Item) (*domain.Item, error) {
	r.nextID++
	clone := *it
	clone.ID = fmt.Sprintf("i%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

// seed stores an item with a fixed id.
func (r *stubItemRepo) seed(id, businessID string, price float64) *domain.Item {
	it := &domain.Item{ID: id, BusinessID: businessID, Name: "item " + id, Price: price, OfferType: domain.OfferProduct}
	r.byID[id] = it
	return it
}

func (r *stubItemRepo) FindByID(_ context.Context, id string) (*domain.Item, error) {
	it, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *stubItemRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Item, error) {
	out := make(map[string]*domain.Item, len(ids))
	for _, id := range ids {
		if it, ok := r.byID[id]; ok {
			clone := *it
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubItemRepo) List(_ context.Context) ([]*domain.Item, error) {
	return r.filter(func(*domain.Item) bool { return true }), nil
}

func (r *stubItemRepo) ListByBusiness(_ context.Context, businessID string) ([]*domain.Item, error) {
	return r.filter(func(it *domain.Item) bool { return it.BusinessID == businessID }), nil
}

func (r *stubItemRepo) filter(keep func(*domain.Item) bool) []*domain.Item {
	out := []*domain.Item{}
	for _, it := range r.byID {
		if keep(it) {
			clone := *it
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubItemRepo) Update(_ context.Context, it *domain.Item) error {
	if _, ok := r.byID[it.ID]; !ok {
		return domain.ErrItemNotFound
	}
	clone := *it
	r.byID[it.ID] = &clone
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.byID, id)
	return nil
}

// stubCartRepo keeps lines in a slice to preserve insertion order.
type stubCartRepo struct {
	lines []*domain.CartLine
	saves int // Save and Increment calls
	// failNext, when set, is returned by the next write and then cleared.
	failNext error
	// beforeWrite runs at the start of every write, standing in for a
	// concurrent request that lands between a read and a write.
	beforeWrite func()
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{}
}

func (r *stubCartRepo) index(userID, itemID string) int {
	for i, l := range r.lines {
		if l.UserID == userID && l.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (r *stubCartRepo) FindLine(_ context.Context, userID, itemID string) (*domain.CartLine, error) {
	i := r.index(userID, itemID)
	if i < 0 {
		return nil, domain.ErrNotInCart
	}
	clone := *r.lines[i]
	return &clone, nil
}

func (r *stubCartRepo) ListLines(_ context.Context, userID string) ([]*domain.CartLine, error) {
	out := []*domain.CartLine{}
	for _, l := range r.lines {
		if l.UserID == userID {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCartRepo) takeFailure() error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *stubCartRepo) Save(_ context.Context, line *domain.CartLine) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	r.saves++
	clone := *line
	if i := r.index(line.UserID, line.ItemID); i >= 0 {
		r.lines[i] = &clone
		return nil
	}
	r.lines = append(r.lines, &clone)
	return nil
}

func (r *stubCartRepo) Increment(_ context.Context, userID, itemID string, delta int, at time.Time) (int, error) {
	if err := r.takeFailure(); err != nil {
		return 0, err
	}
	r.saves++
	if i := r.index(userID, itemID); i >= 0 {
		r.lines[i].Quantity += delta
		r.lines[i].UpdatedAt = at
		return r.lines[i].Quantity, nil
	}
	r.lines = append(r.lines, &domain.CartLine{
		UserID: userID, ItemID: itemID, Quantity: delta, CreatedAt: at, UpdatedAt: at,
	})
	return delta, nil
}

func (r *stubCartRepo) DeleteLine(_ context.Context, userID, itemID string) error {
	if i := r.index(userID, itemID); i >= 0 {
		r.lines = append(r.lines[:i], r.lines[i+1:]...)
	}
	return nil
}

func (r *stubCartRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := r.lines[:0]
	for _, l := range r.lines {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	r.lines = kept
	return nil
}

func (r *stubCartRepo) DeleteByItems(_ context.Context, itemIDs []string) error {
	drop := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		drop[id] = true
	}
	kept := r.lines[:0]
	for _, l := range r.lines {
		if !drop[l.ItemID] {
			kept = append(kept, l)
		}
	}
	r.lines = kept
	return nil
}

type stubIdempotency struct {
	seen     map[string]bool
	err      error
	released int
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{seen: make(map[string]bool)}
}

func (s *stubIdempotency) Claim(_ context.Context, scope, key string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	k := scope + ":" + key
	if s.seen[k] {
		return false, nil
	}
	s.seen[k] = true
	return true, nil
}

func (s *stubIdempotency) Release(_ context.Context, scope, key string) error {
	s.released++
	delete(s.seen, scope+":"+key)
	return nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	users      *stubUserRepo
	businesses *stubBusinessRepo
	items      *stubItemRepo
	cart       *stubCartRepo
	idem       *stubIdempotency
}

func newFixture() *fixture {
	return &fixture{
		users:      newStubUserRepo(),
		businesses: newStubBusinessRepo(),
		items:      newStubItemRepo(),
		cart:       newStubCartRepo(),
		idem:       newStubIdempotency(),
	}
}

func (f *fixture) businessService() *BusinessService {
	return NewBusinessService(f.users, f.businesses, f.items, f.cart, discardLogger)
}

func (f *fixture) itemService() *ItemService {
	return NewItemService(f.businesses, f.items, f.cart, discardLogger)
}

func (f *fixture) cartService() *CartService {
	return NewCartService(f.cart, f.items, f.idem, discardLogger)
}

func (f *fixture) userService(tokens *TokenCodec) *UserService {
	return NewUserService(f.users, f.businesses, f.items, f.cart, NewBcryptHasher(4), tokens, discardLogger)
}

func principal(u *domain.User) domain.Principal {
	return domain.PrincipalOf(u)
}
