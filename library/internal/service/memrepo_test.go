package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Astemirdum/library-catalog/library/internal/errs"
	"github.com/Astemirdum/library-catalog/library/internal/model"
	"github.com/Astemirdum/library-catalog/library/internal/repository"
)

type memState struct {
	seq        int64
	books      map[int64]model.Book
	authors    map[int64]model.Author
	categories map[int64]model.Category
	users      map[int64]model.User
	roles      map[int64]model.Role
	borrows    map[int64]model.Borrow
	reviews    map[int64]model.Review
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memState) clone() *memState {
	return &memState{
		seq:        s.seq,
		books:      cloneMap(s.books),
		authors:    cloneMap(s.authors),
		categories: cloneMap(s.categories),
		users:      cloneMap(s.users),
		roles:      cloneMap(s.roles),
		borrows:    cloneMap(s.borrows),
		reviews:    cloneMap(s.reviews),
	}
}

func (s *memState) nextID() int64 {
	s.seq++
	return s.seq
}

// memRepo is an in-memory repository.Repository. A transaction works on a copy of the
// state under a global lock and replaces the state on commit.
type memRepo struct {
	mu   *sync.Mutex
	st   *memState
	inTx bool

	failCreateBorrow error
}

var _ repository.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		mu: &sync.Mutex{},
		st: &memState{
			books:      map[int64]model.Book{},
			authors:    map[int64]model.Author{},
			categories: map[int64]model.Category{},
			users:      map[int64]model.User{},
			roles:      map[int64]model.Role{},
			borrows:    map[int64]model.Borrow{},
			reviews:    map[int64]model.Review{},
		},
	}
}

func (r *memRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

// InReadTx gets a snapshot for free: transactions run one at a time.
func (r *memRepo) InReadTx(ctx context.Context, fn func(repo repository.Repository) error) error {
	return r.InTx(ctx, fn)
}

func (r *memRepo) InTx(ctx context.Context, fn func(repo repository.Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memRepo{mu: r.mu, st: r.st.clone(), inTx: true, failCreateBorrow: r.failCreateBorrow}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	*r.st = *tx.st
	return nil
}

// seed helpers, used by tests only.

func (r *memRepo) addUser(name string) int64 {
	defer r.lock()()
	id := r.st.nextID()
	r.st.users[id] = model.User{ID: id, Username: name, Email: name + "@example.com"}
	return id
}

func (r *memRepo) addRole(name string) int64 {
	defer r.lock()()
	id := r.st.nextID()
	r.st.roles[id] = model.Role{ID: id, Name: name}
	return id
}

func (r *memRepo) addBook(title string, stock int) int64 {
	defer r.lock()()
	id := r.st.nextID()
	r.st.books[id] = model.Book{ID: id, Title: title, Stock: stock}
	return id
}

func (r *memRepo) stock(bookID int64) int {
	defer r.lock()()
	return r.st.books[bookID].Stock
}

func (r *memRepo) authorCount() int {
	defer r.lock()()
	return len(r.st.authors)
}

func (r *memRepo) Reserve(_ context.Context, bookID int64) error {
	defer r.lock()()
	b, ok := r.st.books[bookID]
	if !ok {
		return errs.ErrBookNotFound
	}
	if b.Stock <= 0 {
		return errs.ErrInsufficientStock
	}
	b.Stock--
	r.st.books[bookID] = b
	return nil
}

func (r *memRepo) Release(_ context.Context, bookID int64) error {
	defer r.lock()()
	b, ok := r.st.books[bookID]
	if !ok {
		return errs.ErrBookNotFound
	}
	b.Stock++
	r.st.books[bookID] = b
	return nil
}

func (r *memRepo) view(b model.Book) model.BookView {
	v := model.BookView{
		ID:         b.ID,
		Title:      b.Title,
		AuthorID:   b.AuthorID,
		CategoryID: b.CategoryID,
		ISBN:       b.ISBN,
		Stock:      b.Stock,
	}
	if b.AuthorID != nil {
		if a, ok := r.st.authors[*b.AuthorID]; ok {
			name := a.Name
			v.AuthorName = &name
		}
	}
	if b.CategoryID != nil {
		if c, ok := r.st.categories[*b.CategoryID]; ok {
			name := c.Name
			v.CategoryName = &name
		}
	}
	return v
}

func (r *memRepo) GetBook(_ context.Context, id int64) (model.BookView, error) {
	defer r.lock()()
	b, ok := r.st.books[id]
	if !ok {
		return model.BookView{}, errs.ErrBookNotFound
	}
	return r.view(b), nil
}

func (r *memRepo) BookExists(_ context.Context, id int64) (bool, error) {
	defer r.lock()()
	_, ok := r.st.books[id]
	return ok, nil
}

func (r *memRepo) LockBook(_ context.Context, id int64) error {
	defer r.lock()()
	if _, ok := r.st.books[id]; !ok {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *memRepo) checkBook(b model.Book) error {
	if b.CategoryID != nil {
		if _, ok := r.st.categories[*b.CategoryID]; !ok {
			return errs.ErrCategoryNotFound
		}
	}
	if b.Stock < 0 {
		return errs.Validation("stock must not be negative")
	}
	return nil
}

func (r *memRepo) CreateBook(_ context.Context, book model.Book) (int64, error) {
	defer r.lock()()
	if err := r.checkBook(book); err != nil {
		return 0, err
	}
	book.ID = r.st.nextID()
	r.st.books[book.ID] = book
	return book.ID, nil
}

func (r *memRepo) UpdateBook(_ context.Context, book model.Book) error {
	defer r.lock()()
	if _, ok := r.st.books[book.ID]; !ok {
		return errs.ErrBookNotFound
	}
	if err := r.checkBook(book); err != nil {
		return err
	}
	r.st.books[book.ID] = book
	return nil
}

func (r *memRepo) DeleteBook(_ context.Context, id int64) error {
	defer r.lock()()
	if _, ok := r.st.books[id]; !ok {
		return errs.ErrBookNotFound
	}
	delete(r.st.books, id)
	for bid, b := range r.st.borrows {
		if b.BookID == id {
			delete(r.st.borrows, bid)
		}
	}
	for rid, rv := range r.st.reviews {
		if rv.BookID == id {
			delete(r.st.reviews, rid)
		}
	}
	return nil
}

func (r *memRepo) matchBooks(query string) []model.BookView {
	query = strings.ToLower(query)
	var out []model.BookView
	for _, b := range r.st.books {
		v := r.view(b)
		if query != "" {
			hit := strings.Contains(strings.ToLower(v.Title), query)
			if v.AuthorName != nil && strings.Contains(strings.ToLower(*v.AuthorName), query) {
				hit = true
			}
			if v.CategoryName != nil && strings.Contains(strings.ToLower(*v.CategoryName), query) {
				hit = true
			}
			if !hit {
				continue
			}
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (r *memRepo) ListBooks(_ context.Context, query string, limit, offset int) ([]model.BookView, error) {
	defer r.lock()()
	return window(r.matchBooks(query), limit, offset), nil
}

func (r *memRepo) CountBooks(_ context.Context, query string) (int, error) {
	defer r.lock()()
	return len(r.matchBooks(query)), nil
}

func (r *memRepo) FindAuthorByName(_ context.Context, name string) (model.Author, error) {
	defer r.lock()()
	var found *model.Author
	for _, a := range r.st.authors {
		a := a
		if a.Name == name && (found == nil || a.ID < found.ID) {
			found = &a
		}
	}
	if found == nil {
		return model.Author{}, errs.ErrNotFound
	}
	return *found, nil
}

func (r *memRepo) CreateAuthor(_ context.Context, name string) (model.Author, error) {
	defer r.lock()()
	a := model.Author{ID: r.st.nextID(), Name: name}
	r.st.authors[a.ID] = a
	return a, nil
}

func (r *memRepo) ListAuthors(_ context.Context, byName bool) ([]model.Author, error) {
	defer r.lock()()
	out := make([]model.Author, 0, len(r.st.authors))
	for _, a := range r.st.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if byName && out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if byName {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memRepo) CreateCategory(_ context.Context, name string) (model.Category, error) {
	defer r.lock()()
	c := model.Category{ID: r.st.nextID(), Name: name}
	r.st.categories[c.ID] = c
	return c, nil
}

func (r *memRepo) ListCategories(_ context.Context, byName bool) ([]model.Category, error) {
	defer r.lock()()
	out := make([]model.Category, 0, len(r.st.categories))
	for _, c := range r.st.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if byName && out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if byName {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memRepo) UserExists(_ context.Context, id int64) (bool, error) {
	defer r.lock()()
	_, ok := r.st.users[id]
	return ok, nil
}

func (r *memRepo) CreateUser(_ context.Context, user model.User) (model.User, error) {
	defer r.lock()()
	for _, u := range r.st.users {
		if u.Username == user.Username || u.Email == user.Email {
			return model.User{}, errs.ErrUserExists
		}
	}
	if user.RoleID != nil {
		if _, ok := r.st.roles[*user.RoleID]; !ok {
			return model.User{}, errs.ErrRoleNotFound
		}
	}
	user.ID = r.st.nextID()
	r.st.users[user.ID] = user
	return user, nil
}

func (r *memRepo) ListUsers(_ context.Context) ([]model.UserView, error) {
	defer r.lock()()
	out := make([]model.UserView, 0, len(r.st.users))
	for _, u := range r.st.users {
		v := model.UserView{ID: u.ID, Username: u.Username, Email: u.Email}
		if u.RoleID != nil {
			if role, ok := r.st.roles[*u.RoleID]; ok {
				name := role.Name
				v.RoleName = &name
			}
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRepo) FindRoleByName(_ context.Context, name string) (model.Role, error) {
	defer r.lock()()
	for _, role := range r.st.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return model.Role{}, errs.ErrRoleNotFound
}

func (r *memRepo) ListRoles(_ context.Context) ([]model.Role, error) {
	defer r.lock()()
	out := make([]model.Role, 0, len(r.st.roles))
	for _, role := range r.st.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) CreateBorrow(_ context.Context, borrow model.Borrow) (model.Borrow, error) {
	defer r.lock()()
	if r.failCreateBorrow != nil {
		return model.Borrow{}, r.failCreateBorrow
	}
	if _, ok := r.st.users[borrow.UserID]; !ok {
		return model.Borrow{}, errs.ErrReferenceMissing
	}
	if _, ok := r.st.books[borrow.BookID]; !ok {
		return model.Borrow{}, errs.ErrReferenceMissing
	}
	borrow.ID = r.st.nextID()
	borrow.ReturnedAt = nil
	r.st.borrows[borrow.ID] = borrow
	return borrow, nil
}

func (r *memRepo) GetBorrow(_ context.Context, id int64) (model.Borrow, error) {
	defer r.lock()()
	b, ok := r.st.borrows[id]
	if !ok {
		return model.Borrow{}, errs.ErrBorrowNotFound
	}
	return b, nil
}

func (r *memRepo) CloseBorrow(_ context.Context, id int64, at time.Time) (model.Borrow, error) {
	defer r.lock()()
	b, ok := r.st.borrows[id]
	if !ok {
		return model.Borrow{}, errs.ErrBorrowNotFound
	}
	if b.ReturnedAt != nil {
		return model.Borrow{}, errs.ErrAlreadyReturned
	}
	b.ReturnedAt = &at
	r.st.borrows[id] = b
	return b, nil
}

func (r *memRepo) CountOpenBorrows(_ context.Context, bookID int64) (int, error) {
	defer r.lock()()
	n := 0
	for _, b := range r.st.borrows {
		if b.BookID == bookID && b.ReturnedAt == nil {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) ListBorrows(_ context.Context, limit, offset int) ([]model.BorrowView, error) {
	defer r.lock()()
	out := make([]model.BorrowView, 0, len(r.st.borrows))
	for _, b := range r.st.borrows {
		out = append(out, model.BorrowView{
			ID:         b.ID,
			UserID:     b.UserID,
			Username:   r.st.users[b.UserID].Username,
			BookID:     b.BookID,
			Title:      r.st.books[b.BookID].Title,
			BorrowedAt: b.BorrowedAt,
			DueAt:      b.DueAt,
			ReturnedAt: b.ReturnedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return window(out, limit, offset), nil
}

func (r *memRepo) CountBorrows(_ context.Context) (int, error) {
	defer r.lock()()
	return len(r.st.borrows), nil
}

func (r *memRepo) CreateReview(_ context.Context, review model.Review) (model.Review, error) {
	defer r.lock()()
	if _, ok := r.st.users[review.UserID]; !ok {
		return model.Review{}, errs.ErrReferenceMissing
	}
	if _, ok := r.st.books[review.BookID]; !ok {
		return model.Review{}, errs.ErrReferenceMissing
	}
	review.ID = r.st.nextID()
	review.CreatedAt = time.Now().UTC()
	r.st.reviews[review.ID] = review
	return review, nil
}

func (r *memRepo) ListReviews(_ context.Context, bookID int64) ([]model.ReviewView, error) {
	defer r.lock()()
	out := []model.ReviewView{}
	for _, rv := range r.st.reviews {
		if rv.BookID != bookID {
			continue
		}
		out = append(out, model.ReviewView{
			ID:        rv.ID,
			Username:  r.st.users[rv.UserID].Username,
			Rating:    rv.Rating,
			Content:   rv.Content,
			CreatedAt: rv.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
