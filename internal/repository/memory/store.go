// Package memory is an in-memory implementation of the repository
// interfaces. It keeps the same ownership and uniqueness rules as the
// Postgres statements and backs the service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"kampuskitap/internal/model"
	"kampuskitap/internal/repository"
)

var (
	_ repository.UserRepository     = userRepo{}
	_ repository.ProductRepository  = productRepo{}
	_ repository.CategoryRepository = categoryRepo{}
)

// Store holds users, products and categories behind one lock
type Store struct {
	mu         sync.Mutex
	users      map[int]model.User
	products   map[int]model.Product
	categories []model.Category
	nextUserID int
	nextProdID int
	now        func() time.Time
	writes     int
}

// DefaultCategories mirrors the migration seed
var DefaultCategories = []model.Category{
	{ID: 1, Name: "Ders Kitabı"},
	{ID: 2, Name: "Roman"},
	{ID: 3, Name: "Sınav Hazırlık"},
	{ID: 4, Name: "Yabancı Dil"},
	{ID: 5, Name: "Diğer"},
}

func NewStore() *Store {
	cats := make([]model.Category, len(DefaultCategories))
	copy(cats, DefaultCategories)
	return &Store{
		users:      map[int]model.User{},
		products:   map[int]model.Product{},
		categories: cats,
		now:        time.Now,
	}
}

// SetClock replaces the time source used for created_at/updated_at
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Writes counts successful mutations
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) Users() repository.UserRepository { return userRepo{s} }
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *model.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = s.now()
	s.users[user.ID] = *user
	s.writes++
	return nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) FindAll(_ context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]model.Category, len(r.s.categories))
	copy(out, r.s.categories)
	return out, nil
}

type productRepo struct{ s *Store }

// joined fills the owner and category columns; callers hold the lock
func (s *Store) joined(p model.Product) model.Product {
	p.Username = s.users[p.UserID].Username
	for _, c := range s.categories {
		if c.ID == p.CategoryID {
			p.Category = c.Name
		}
	}
	return p
}

func (s *Store) categoryExists(id int) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (r productRepo) FindAll(_ context.Context) ([]model.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, s.joined(p))
	}
	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID > products[j].ID
	})
	return products, nil
}

func (r productRepo) FindByID(_ context.Context, id int) (*model.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	p = s.joined(p)
	email := s.users[p.UserID].Email
	p.Email = &email
	return &p, nil
}

func (r productRepo) Create(_ context.Context, ownerID int, in model.ProductInput) (*model.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[ownerID]; !ok || !s.categoryExists(in.CategoryID) {
		return nil, repository.ErrInvalidReference
	}
	if in.Price > model.MaxPrice {
		return nil, repository.ErrValueOutOfRange
	}
	s.nextProdID++
	now := s.now()
	p := model.Product{
		ID:          s.nextProdID,
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products[p.ID] = p
	s.writes++
	p = s.joined(p)
	return &p, nil
}

func (r productRepo) Update(_ context.Context, id, ownerID int, in model.ProductInput) (*model.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok || p.UserID != ownerID {
		return nil, nil
	}
	if !s.categoryExists(in.CategoryID) {
		return nil, repository.ErrInvalidReference
	}
	if in.Price > model.MaxPrice {
		return nil, repository.ErrValueOutOfRange
	}
	p.Title = in.Title
	p.Price = in.Price
	p.Description = in.Description
	p.ImageURL = in.ImageURL
	p.CategoryID = in.CategoryID
	p.UpdatedAt = s.now()
	s.products[id] = p
	s.writes++
	p = s.joined(p)
	return &p, nil
}

func (r productRepo) Delete(_ context.Context, id, ownerID int) (*model.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok || p.UserID != ownerID {
		return nil, nil
	}
	delete(s.products, id)
	s.writes++
	p = s.joined(p)
	return &p, nil
}
