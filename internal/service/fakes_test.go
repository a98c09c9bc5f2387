package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"
)

type memAttemptStore struct {
	mu       sync.Mutex
	nextID   uint
	attempts []model.QuizAttempt
}

func newMemAttemptStore() *memAttemptStore {
	return &memAttemptStore{}
}

func (s *memAttemptStore) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.UserID == attempt.UserID && a.QuizDate == attempt.QuizDate {
			return util.ErrAttemptExists
		}
	}
	s.nextID++
	attempt.ID = s.nextID
	attempt.CreatedAt = attempt.SubmittedAt
	s.attempts = append(s.attempts, *attempt)
	return nil
}

func (s *memAttemptStore) FindByUserAndDate(ctx context.Context, userID uint, day string) (*model.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.UserID == userID && a.QuizDate == day {
			cp := a
			return &cp, nil
		}
	}
	return nil, util.ErrAttemptNotFound
}

func (s *memAttemptStore) ListByDate(ctx context.Context, day string) ([]model.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QuizAttempt
	for _, a := range s.attempts {
		if a.QuizDate == day {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].ElapsedSeconds != out[j].ElapsedSeconds {
			return out[i].ElapsedSeconds < out[j].ElapsedSeconds
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memAttemptStore) ListByUser(ctx context.Context, userID uint, limit int) ([]model.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QuizAttempt
	for i := len(s.attempts) - 1; i >= 0 && len(out) < limit; i-- {
		if s.attempts[i].UserID == userID {
			out = append(out, s.attempts[i])
		}
	}
	return out, nil
}

func (s *memAttemptStore) DeleteByDate(ctx context.Context, day string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []model.QuizAttempt
	var deleted int64
	for _, a := range s.attempts {
		if day == "" || a.QuizDate == day {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	s.attempts = kept
	return deleted, nil
}

type memVoucherStore struct {
	mu       sync.Mutex
	nextID   uint
	vouchers map[uint]*model.Voucher
	products *memProductStore
}

func newMemVoucherStore(products *memProductStore) *memVoucherStore {
	return &memVoucherStore{vouchers: map[uint]*model.Voucher{}, products: products}
}

func (s *memVoucherStore) Create(ctx context.Context, v *model.Voucher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.vouchers {
		if existing.AttemptID == v.AttemptID {
			return util.ErrVoucherIssued
		}
	}
	s.nextID++
	v.ID = s.nextID
	cp := *v
	s.vouchers[v.ID] = &cp
	return nil
}

func (s *memVoucherStore) find(match func(*model.Voucher) bool) (*model.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vouchers {
		if match(v) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, util.ErrVoucherNotFound
}

func (s *memVoucherStore) FindByAttempt(ctx context.Context, attemptID uint) (*model.Voucher, error) {
	return s.find(func(v *model.Voucher) bool { return v.AttemptID == attemptID })
}

func (s *memVoucherStore) FindByCode(ctx context.Context, code string) (*model.Voucher, error) {
	return s.find(func(v *model.Voucher) bool { return v.Code == code })
}

func (s *memVoucherStore) ListByUser(ctx context.Context, userID uint) ([]model.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Voucher
	for _, v := range s.vouchers {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memVoucherStore) MarkRedeemed(ctx context.Context, voucherID, productID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vouchers[voucherID]
	if !ok {
		return util.ErrVoucherNotFound
	}
	if v.State != model.VoucherActive {
		return util.ErrVoucherAlreadyRedeemed
	}
	if !at.Before(v.ExpiresAt) {
		return util.ErrVoucherExpired
	}
	if s.products != nil {
		if err := s.products.decrement(productID); err != nil {
			return err
		}
	}
	v.State = model.VoucherRedeemed
	v.RedeemedAt = &at
	v.ProductID = &productID
	return nil
}

func (s *memVoucherStore) MarkExpired(ctx context.Context, voucherID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vouchers[voucherID]; ok && v.State == model.VoucherActive {
		v.State = model.VoucherExpired
	}
	return nil
}

func (s *memVoucherStore) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, v := range s.vouchers {
		if v.State == model.VoucherActive && !now.Before(v.ExpiresAt) {
			v.State = model.VoucherExpired
			n++
		}
	}
	return n, nil
}

func (s *memVoucherStore) get(id uint) model.Voucher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.vouchers[id]
}

type memProductStore struct {
	mu       sync.Mutex
	nextID   uint
	products map[uint]*model.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: map[uint]*model.Product{}}
}

func (s *memProductStore) Create(ctx context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memProductStore) Update(ctx context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return util.ErrProductNotFound
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memProductStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return util.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *memProductStore) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, util.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memProductStore) List(ctx context.Context, enabledOnly bool) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.products {
		if enabledOnly && !p.Enabled {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memProductStore) decrement(id uint) error {
	p, ok := s.products[id]
	if !ok || p.Stock <= 0 {
		return util.ErrProductUnavailable
	}
	p.Stock--
	return nil
}

type memUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[uint]*model.User{}}
}

func (s *memUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return util.ErrEmailRegistered
		}
	}
	s.nextID++
	user.ID = s.nextID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memUserStore) Update(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return util.ErrUserNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (s *memUserStore) FindByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *memUserStore) List(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, u := range s.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.SchoolID != nil && (u.SchoolID == nil || *u.SchoolID != *filter.SchoolID) {
			continue
		}
		if filter.Search != "" && !strings.Contains(u.Name, filter.Search) && !strings.Contains(u.Email, filter.Search) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (s *memUserStore) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

type memSchoolStore struct {
	mu      sync.Mutex
	nextID  uint
	schools map[uint]*model.School
}

func newMemSchoolStore() *memSchoolStore {
	return &memSchoolStore{schools: map[uint]*model.School{}}
}

func (s *memSchoolStore) Create(ctx context.Context, school *model.School) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range s.schools {
		if sc.Code == school.Code {
			return util.ErrSchoolCodeExists
		}
	}
	s.nextID++
	school.ID = s.nextID
	cp := *school
	s.schools[school.ID] = &cp
	return nil
}

func (s *memSchoolStore) Update(ctx context.Context, school *model.School) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *school
	s.schools[school.ID] = &cp
	return nil
}

func (s *memSchoolStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schools[id]; !ok {
		return util.ErrSchoolNotFound
	}
	delete(s.schools, id)
	return nil
}

func (s *memSchoolStore) FindByID(ctx context.Context, id uint) (*model.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.schools[id]
	if !ok {
		return nil, util.ErrSchoolNotFound
	}
	cp := *sc
	return &cp, nil
}

func (s *memSchoolStore) List(ctx context.Context, city, search string, page, limit int) ([]model.School, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.School
	for _, sc := range s.schools {
		out = append(out, *sc)
	}
	return out, int64(len(out)), nil
}

type memQuestionStore struct {
	mu        sync.Mutex
	nextID    uint
	questions map[uint]*model.Question
}

func newMemQuestionStore() *memQuestionStore {
	return &memQuestionStore{questions: map[uint]*model.Question{}}
}

func (s *memQuestionStore) Create(ctx context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	q.ID = s.nextID
	cp := *q
	s.questions[q.ID] = &cp
	return nil
}

func (s *memQuestionStore) Update(ctx context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *q
	s.questions[q.ID] = &cp
	return nil
}

func (s *memQuestionStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return util.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *memQuestionStore) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	cp := *q
	return &cp, nil
}

func (s *memQuestionStore) ListByLevel(ctx context.Context, level int, enabledOnly bool) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Question
	for _, q := range s.questions {
		if q.Level != level || (enabledOnly && !q.Enabled) {
			continue
		}
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fixedClock 可手动推进的时钟
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func intPtr(v int) *int { return &v }
