package impl

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/domain/repository"
	"parlaseramik/internal/domain/service"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the postgres repositories. Transactions
// are serialised and rolled back by restoring a snapshot, which is enough to
// observe the stock and rating rules through the real services.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users      map[uuid.UUID]entity.User
	tokens     map[string]entity.RefreshToken
	addresses  map[uuid.UUID]entity.Address
	categories map[uuid.UUID]entity.Category
	products   map[uuid.UUID]entity.Product
	orders     map[uuid.UUID]entity.Order
	reviews    map[uuid.UUID]entity.Review

	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uuid.UUID]entity.User{},
		tokens:     map[string]entity.RefreshToken{},
		addresses:  map[uuid.UUID]entity.Address{},
		categories: map[uuid.UUID]entity.Category{},
		products:   map[uuid.UUID]entity.Product{},
		orders:     map[uuid.UUID]entity.Order{},
		reviews:    map[uuid.UUID]entity.Review{},
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so "newest first" is deterministic.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)

	return s.clock
}

type memSnapshot struct {
	users      map[uuid.UUID]entity.User
	tokens     map[string]entity.RefreshToken
	addresses  map[uuid.UUID]entity.Address
	categories map[uuid.UUID]entity.Category
	products   map[uuid.UUID]entity.Product
	orders     map[uuid.UUID]entity.Order
	reviews    map[uuid.UUID]entity.Review
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return memSnapshot{
		users:      maps.Clone(s.users),
		tokens:     maps.Clone(s.tokens),
		addresses:  maps.Clone(s.addresses),
		categories: maps.Clone(s.categories),
		products:   maps.Clone(s.products),
		orders:     maps.Clone(s.orders),
		reviews:    maps.Clone(s.reviews),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.tokens = snap.tokens
	s.addresses = snap.addresses
	s.categories = snap.categories
	s.products = snap.products
	s.orders = snap.orders
	s.reviews = snap.reviews
}

func (s *memStore) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)

		return err
	}

	return nil
}

func (s *memStore) UserRepo() repository.UserRepository { return memUserRepo{s} }
func (s *memStore) RefreshTokenRepo() repository.RefreshTokenRepository {
	return memRefreshTokenRepo{s}
}
func (s *memStore) AddressRepo() repository.AddressRepository   { return memAddressRepo{s} }
func (s *memStore) CategoryRepo() repository.CategoryRepository { return memCategoryRepo{s} }
func (s *memStore) ProductRepo() repository.ProductRepository   { return memProductRepo{s} }
func (s *memStore) OrderRepo() repository.OrderRepository       { return memOrderRepo{s} }
func (s *memStore) ReviewRepo() repository.ReviewRepository     { return memReviewRepo{s} }

func (s *memStore) stock(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.products[id].Stock
}

func (s *memStore) addCategory(nameTr, nameEn string) *entity.Category {
	c := &entity.Category{ID: uuid.New(), NameTr: nameTr, NameEn: nameEn, Active: true}
	_ = memCategoryRepo{s}.Create(context.Background(), c)

	return c
}

func (s *memStore) addProduct(categoryID uuid.UUID, nameTr string, price string, stock int) *entity.Product {
	p := &entity.Product{
		ID:         uuid.New(),
		NameTr:     nameTr,
		NameEn:     nameTr,
		Price:      mustDecimal(price),
		Stock:      stock,
		Images:     []string{"https://cdn.example.com/" + strings.ToLower(nameTr) + ".jpg"},
		CategoryID: categoryID,
		Active:     true,
	}
	_ = memProductRepo{s}.Create(context.Background(), p)

	return p
}

func (s *memStore) addUser(email string) *entity.User {
	u := &entity.User{ID: uuid.New(), Email: email, FirstName: "Ayşe", LastName: "Yılmaz", Role: entity.RoleUser, Enabled: true}
	_ = memUserRepo{s}.Create(context.Background(), u)

	return u
}

func paginate[T any](items []T, page entity.PageRequest) *entity.Page[T] {
	total := int64(len(items))
	start := min(page.Offset(), len(items))
	end := min(start+page.Size, len(items))

	return &entity.Page[T]{Items: items[start:end], Page: page.Page, Size: page.Size, Total: total}
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &u, nil
}

func (r memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.s.tick()
	r.s.users[user.ID] = *user

	return nil
}

func (r memUserRepo) UpdateProfile(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.FirstName, u.LastName, u.Phone = user.FirstName, user.LastName, user.Phone
	r.s.users[user.ID] = u

	return nil
}

func (r memUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.s.users[id] = u

	return nil
}

type memRefreshTokenRepo struct{ s *memStore }

func (r memRefreshTokenRepo) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	token.ID = uuid.New()
	r.s.tokens[token.TokenHash] = *token

	return nil
}

func (r memRefreshTokenRepo) FindRefreshTokenByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tokens[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}

	return &t, nil
}

func (r memRefreshTokenRepo) DeleteRefreshTokenByHash(_ context.Context, tokenHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tokens[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.s.tokens, tokenHash)

	return nil
}

func (r memRefreshTokenRepo) DeleteRefreshTokensByUserID(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	maps.DeleteFunc(r.s.tokens, func(_ string, t entity.RefreshToken) bool { return t.UserID == userID })

	return nil
}

type memAddressRepo struct{ s *memStore }

func (r memAddressRepo) CreateAddress(_ context.Context, address *entity.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.addresses[address.ID] = *address

	return nil
}

func (r memAddressRepo) FindAddressByID(_ context.Context, id uuid.UUID) (*entity.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.addresses[id]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}

	return &a, nil
}

func (r memAddressRepo) FindAddressesByUser(_ context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Address
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			out = append(out, &a)
		}
	}

	return out, nil
}

type memCategoryRepo struct{ s *memStore }

func (r memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}

	return &c, nil
}

func (r memCategoryRepo) all(activeOnly bool) []*entity.Category {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Category
	for _, c := range r.s.categories {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *entity.Category) int { return strings.Compare(a.NameTr, b.NameTr) })

	return out
}

func (r memCategoryRepo) FindAll(_ context.Context) ([]*entity.Category, error) {
	return r.all(false), nil
}

func (r memCategoryRepo) FindActive(_ context.Context) ([]*entity.Category, error) {
	return r.all(true), nil
}

func (r memCategoryRepo) exists(match func(entity.Category) bool, excludeID uuid.UUID) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, c := range r.s.categories {
		if id != excludeID && match(c) {
			return true
		}
	}

	return false
}

func (r memCategoryRepo) ExistsByNameTr(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return r.exists(func(c entity.Category) bool { return c.NameTr == name }, excludeID), nil
}

func (r memCategoryRepo) ExistsByNameEn(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return r.exists(func(c entity.Category) bool { return c.NameEn == name }, excludeID), nil
}

func (r memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = r.s.tick()
	r.s.categories[category.ID] = *category

	return nil
}

func (r memCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	r.s.categories[category.ID] = *category

	return nil
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	p.Images = slices.Clone(p.Images)

	return &p, nil
}

// FindByIDForUpdate relies on Execute holding txMu for the row lock.
func (r memProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.FindByID(ctx, id)
}

func (r memProductRepo) List(_ context.Context, filter repository.ProductFilter, page entity.PageRequest) (*entity.Page[*entity.Product], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	keyword := strings.ToLower(filter.Keyword)
	var out []*entity.Product
	for _, p := range r.s.products {
		if filter.ActiveOnly && !p.Active {
			continue
		}
		if filter.CategoryID != uuid.Nil && p.CategoryID != filter.CategoryID {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(p.NameTr), keyword) &&
			!strings.Contains(strings.ToLower(p.NameEn), keyword) {
			continue
		}
		out = append(out, &p)
	}
	slices.SortFunc(out, memProductOrder(page.Sort))

	return paginate(out, page), nil
}

func memProductOrder(sort entity.Sort) func(a, b *entity.Product) int {
	if sort.IsDefault() {
		return func(a, b *entity.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}

	return func(a, b *entity.Product) int {
		var n int
		switch sort.Field {
		case entity.SortByPrice:
			n = a.Price.Cmp(b.Price)
		case entity.SortByNameTr:
			n = strings.Compare(a.NameTr, b.NameTr)
		default:
			n = a.CreatedAt.Compare(b.CreatedAt)
		}
		if sort.Desc {
			return -n
		}

		return n
	}
}

func (r memProductRepo) FindFeatured(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Active && p.Featured {
			out = append(out, &p)
		}
	}

	return out, nil
}

func (r memProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = r.s.tick()
	r.s.products[product.ID] = *product

	return nil
}

func (r memProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.products[product.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	updated := *product
	updated.AverageRating, updated.ReviewCount = existing.AverageRating, existing.ReviewCount
	r.s.products[product.ID] = updated

	return nil
}

func (r memProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return repository.ErrInsufficientStock
	}
	p.Stock += delta
	r.s.products[id] = p

	return nil
}

func (r memProductRepo) UpdateRating(_ context.Context, id uuid.UUID, averageRating float64, reviewCount int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.AverageRating, p.ReviewCount = averageRating, reviewCount
	r.s.products[id] = p

	return nil
}

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	order.CreatedAt = r.s.tick()
	stored := *order
	stored.Items = make([]*entity.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		copied := *item
		copied.OrderID = order.ID
		stored.Items = append(stored.Items, &copied)
	}
	r.s.orders[order.ID] = stored

	return nil
}

func (r memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return &o, nil
}

func (r memOrderRepo) FindByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	o, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, repository.ErrOrderNotFound
	}

	return o, nil
}

func (r memOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.UserID != userID || (status != nil && o.Status != *status) {
			continue
		}
		out = append(out, &o)
	}
	slices.SortFunc(out, func(a, b *entity.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

func (r memOrderRepo) List(_ context.Context, page entity.PageRequest) (*entity.Page[*entity.Order], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*entity.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, &o)
	}
	slices.SortFunc(out, func(a, b *entity.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return paginate(out, page), nil
}

func (r memOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.Status = status
	r.s.orders[id] = o

	return nil
}

func (r memOrderRepo) CompareAndSetStatus(_ context.Context, id uuid.UUID, from, to entity.OrderStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	r.s.orders[id] = o

	return true, nil
}

func (r memOrderRepo) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.PaymentStatus = status
	r.s.orders[id] = o

	return nil
}

type memReviewRepo struct{ s *memStore }

func (r memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[review.ProductID]; !ok {
		return repository.ErrProductNotFound
	}
	review.CreatedAt = r.s.tick()
	r.s.reviews[review.ID] = *review

	return nil
}

func (r memReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}

	return &rv, nil
}

func (r memReviewRepo) filter(match func(entity.Review) bool) []*entity.Review {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Review
	for _, rv := range r.s.reviews {
		if match(rv) {
			out = append(out, &rv)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Review) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out
}

func (r memReviewRepo) FindApprovedByProduct(_ context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	return r.filter(func(rv entity.Review) bool { return rv.Approved && rv.ProductID == productID }), nil
}

func (r memReviewRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return r.filter(func(rv entity.Review) bool { return rv.UserID == userID }), nil
}

func (r memReviewRepo) List(_ context.Context, pendingOnly bool, page entity.PageRequest) (*entity.Page[*entity.Review], error) {
	return paginate(r.filter(func(rv entity.Review) bool { return !pendingOnly || !rv.Approved }), page), nil
}

func (r memReviewRepo) update(id uuid.UUID, fn func(*entity.Review)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv, ok := r.s.reviews[id]
	if !ok {
		return repository.ErrReviewNotFound
	}
	fn(&rv)
	r.s.reviews[id] = rv

	return nil
}

func (r memReviewRepo) SetApproved(_ context.Context, id uuid.UUID, approved bool) error {
	return r.update(id, func(rv *entity.Review) { rv.Approved = approved })
}

func (r memReviewRepo) SetAdminReply(_ context.Context, id uuid.UUID, reply string) error {
	return r.update(id, func(rv *entity.Review) { rv.AdminReply = reply })
}

func (r memReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(r.s.reviews, id)

	return nil
}

// memCache is a plain map cache that records invalidations.
type memCache struct {
	mu          sync.Mutex
	entries     map[string]any
	generations map[string]uint64
	invalidated []string
}

var _ service.CatalogCache = (*memCache)(nil)

func newMemCache() *memCache {
	return &memCache{entries: map[string]any{}, generations: map[string]uint64{}}
}

func (c *memCache) Get(namespace, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[namespace+"/"+key]

	return v, ok
}

func (c *memCache) Generation(namespace string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generations[namespace]
}

func (c *memCache) Set(namespace, key string, value any, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[namespace] != generation {
		return
	}

	c.entries[namespace+"/"+key] = value
}

func (c *memCache) Invalidate(namespaces ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ns := range namespaces {
		c.invalidated = append(c.invalidated, ns)
		c.generations[ns]++
		maps.DeleteFunc(c.entries, func(k string, _ any) bool { return strings.HasPrefix(k, ns+"/") })
	}
}

type sequentialOrderNumbers struct {
	mu sync.Mutex
	n  int
}

func (g *sequentialOrderNumbers) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.n++

	return fmt.Sprintf("PS-%08X", g.n)
}
