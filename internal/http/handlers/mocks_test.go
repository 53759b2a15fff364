package handlers

import (
	"context"
	"sort"
	"sync"

	"github.com/homenest/homenest-api/internal/domain"
)

// In-memory repository fakes mirroring the store's error semantics:
// reads return nil for missing documents, writes return ErrNotFound when
// nothing matched, and user creation enforces the unique email index.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) MarkFraud(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Fraud = true
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakePropertyRepo struct {
	mu         sync.Mutex
	properties map[string]*domain.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[string]*domain.Property)}
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.properties[p.ID] = &cp
	return nil
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePropertyRepo) ListAll(ctx context.Context) ([]domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Property{}
	for _, p := range f.properties {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePropertyRepo) ListVerified(ctx context.Context) ([]domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Property{}
	for _, p := range f.properties {
		if p.Status == domain.PropertyVerified {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinPrice < out[j].MinPrice })
	return out, nil
}

func (f *fakePropertyRepo) ListAdvertised(ctx context.Context) ([]domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Property{}
	for _, p := range f.properties {
		if p.Advertised && p.Status == domain.PropertyVerified {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) ListByAgent(ctx context.Context, agentEmail string) ([]domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Property{}
	for _, p := range f.properties {
		if p.AgentEmail == agentEmail {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) Replace(ctx context.Context, id string, req *domain.PropertyReq) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Title = req.Title
	p.Location = req.Location
	p.Image = req.Image
	p.Description = req.Description
	p.AgentName = req.AgentName
	p.AgentEmail = req.AgentEmail
	p.MinPrice = req.MinPrice
	p.MaxPrice = req.MaxPrice
	return nil
}

func (f *fakePropertyRepo) UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakePropertyRepo) SetAdvertised(ctx context.Context, id string, advertised bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Advertised = advertised
	return nil
}

func (f *fakePropertyRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.properties[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.properties, id)
	return nil
}

func (f *fakePropertyRepo) RejectAllByAgent(ctx context.Context, agentEmail string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.properties {
		if p.AgentEmail == agentEmail {
			p.Status = domain.PropertyRejected
			p.Advertised = false
			n++
		}
	}
	return n, nil
}

func (f *fakePropertyRepo) CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.properties {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakePropertyRepo) CountAdvertised(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.properties {
		if p.Advertised {
			n++
		}
	}
	return n, nil
}

type fakeWishlistRepo struct {
	mu    sync.Mutex
	items map[string]*domain.WishlistItem
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{items: make(map[string]*domain.WishlistItem)}
}

func (f *fakeWishlistRepo) Create(ctx context.Context, item *domain.WishlistItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeWishlistRepo) GetByID(ctx context.Context, id string) (*domain.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (f *fakeWishlistRepo) ListByUser(ctx context.Context, userEmail string) ([]domain.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.WishlistItem{}
	for _, i := range f.items {
		if i.UserEmail == userEmail {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeWishlistRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*domain.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) ListLatest(ctx context.Context, limit int64) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Review{}
	for _, r := range f.reviews {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReviewRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Review{}
	for _, r := range f.reviews {
		if r.PropertyID == propertyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) ListByReviewer(ctx context.Context, reviewerEmail string) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Review{}
	for _, r := range f.reviews {
		if r.ReviewerEmail == reviewerEmail {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.reviews)), nil
}

type fakeOfferRepo struct {
	mu     sync.Mutex
	offers map[string]*domain.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[string]*domain.Offer)}
}

func (f *fakeOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *offer
	f.offers[offer.ID] = &cp
	return nil
}

func (f *fakeOfferRepo) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOfferRepo) ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Offer{}
	for _, o := range f.offers {
		if o.BuyerEmail == buyerEmail {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOfferRepo) ListByAgent(ctx context.Context, agentEmail string) ([]domain.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Offer{}
	for _, o := range f.offers {
		if o.AgentEmail == agentEmail {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOfferRepo) ListBoughtByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Offer{}
	for _, o := range f.offers {
		if o.BuyerEmail == buyerEmail && o.Status == domain.OfferBought {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOfferRepo) AcceptPending(ctx context.Context, id string) (*domain.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[id]
	if !ok || o.Status != domain.OfferPending {
		return nil, domain.ErrNotFound
	}
	o.Status = domain.OfferAccepted
	cp := *o
	return &cp, nil
}

func (f *fakeOfferRepo) RejectSiblings(ctx context.Context, propertyID, acceptedID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, o := range f.offers {
		if o.PropertyID == propertyID && o.ID != acceptedID && o.Status == domain.OfferPending {
			o.Status = domain.OfferRejected
			n++
		}
	}
	return n, nil
}

func (f *fakeOfferRepo) Reject(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = domain.OfferRejected
	return nil
}

func (f *fakeOfferRepo) MarkBought(ctx context.Context, id, transactionID string) (*domain.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[id]
	if !ok || o.Status != domain.OfferAccepted {
		return nil, domain.ErrNotFound
	}
	o.Status = domain.OfferBought
	o.TransactionID = transactionID
	cp := *o
	return &cp, nil
}

func (f *fakeOfferRepo) CountByStatus(ctx context.Context, status domain.OfferStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, o := range f.offers {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	return nil
}

func (noopPublisher) Close() error { return nil }

type fakePaymentProvider struct {
	lastAmount   int64
	lastCurrency string
}

func (f *fakePaymentProvider) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	f.lastAmount = amountCents
	f.lastCurrency = currency
	return "cs_test_secret", nil
}
