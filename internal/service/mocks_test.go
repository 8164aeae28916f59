package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/voyago/travelbook/internal/domain"
)

// ---------- Mocks ----------

type publishedEvent struct {
	subject string
	data    interface{}
}

type mockEventBus struct {
	published  []publishedEvent
	publishErr error
}

func (m *mockEventBus) Publish(_ context.Context, subject string, data interface{}) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, publishedEvent{subject: subject, data: data})
	return nil
}

func (m *mockEventBus) Close() error { return nil }

func (m *mockEventBus) count(subject string) int {
	n := 0
	for _, e := range m.published {
		if e.subject == subject {
			n++
		}
	}
	return n
}

type mockUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) add(u *domain.User) *domain.User {
	if u.ID == 0 {
		u.ID = m.nextID
		m.nextID++
	} else if u.ID >= m.nextID {
		m.nextID = u.ID + 1
	}
	m.users[u.ID] = u
	return u
}

func (m *mockUserRepo) Create(_ context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == req.Email {
			return nil, domain.ErrEmailExists
		}
	}
	return m.add(&domain.User{
		Username:        req.Username,
		Email:           req.Email,
		PasswordHash:    passwordHash,
		Role:            domain.Role(req.Role),
		PreferredBudget: req.PreferredBudget,
		CreatedAt:       time.Now(),
	}), nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type mockWalletRepo struct {
	balances map[int64]decimal.Decimal
}

func newMockWalletRepo() *mockWalletRepo {
	return &mockWalletRepo{balances: make(map[int64]decimal.Decimal)}
}

func (m *mockWalletRepo) GetByUserID(_ context.Context, userID int64) (*domain.Wallet, error) {
	balance, ok := m.balances[userID]
	if !ok {
		return nil, nil
	}
	return &domain.Wallet{ID: userID, UserID: userID, Balance: balance}, nil
}

func (m *mockWalletRepo) Deduct(_ context.Context, userID int64, amount decimal.Decimal) (bool, error) {
	balance, ok := m.balances[userID]
	if !ok || balance.LessThan(amount) {
		return false, nil
	}
	m.balances[userID] = balance.Sub(amount)
	return true, nil
}

func (m *mockWalletRepo) Add(_ context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	balance, ok := m.balances[userID]
	if !ok {
		return nil, nil
	}
	m.balances[userID] = balance.Add(amount)
	return &domain.Wallet{ID: userID, UserID: userID, Balance: m.balances[userID]}, nil
}

type mockNotificationRepo struct {
	nextID        int64
	notifications map[int64]*domain.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{nextID: 1, notifications: make(map[int64]*domain.Notification)}
}

func (m *mockNotificationRepo) insert(userID int64, message string) *domain.Notification {
	n := &domain.Notification{
		ID:        m.nextID,
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.notifications[n.ID] = n
	return n
}

func (m *mockNotificationRepo) Create(_ context.Context, userID int64, message string) (*domain.Notification, error) {
	return m.insert(userID, message), nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	// newest first, matching the repository's ORDER BY created_at DESC
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, userID int64, ids []int64) (int64, error) {
	var flipped int64
	for _, id := range ids {
		n, ok := m.notifications[id]
		if !ok || n.UserID != userID || n.IsRead {
			continue
		}
		n.IsRead = true
		flipped++
	}
	return flipped, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	var flipped int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			flipped++
		}
	}
	return flipped, nil
}

func (m *mockNotificationRepo) countFor(userID int64) int {
	n := 0
	for _, notif := range m.notifications {
		if notif.UserID == userID {
			n++
		}
	}
	return n
}

type mockDestinationRepo struct {
	nextID       int64
	destinations map[int64]*domain.Destination
	images       map[int64][]domain.DestinationImage
	ratings      map[int64]decimal.Decimal
	categories   []domain.Category
}

func newMockDestinationRepo() *mockDestinationRepo {
	return &mockDestinationRepo{
		nextID:       1,
		destinations: make(map[int64]*domain.Destination),
		images:       make(map[int64][]domain.DestinationImage),
		ratings:      make(map[int64]decimal.Decimal),
	}
}

func (m *mockDestinationRepo) add(d *domain.Destination) *domain.Destination {
	if d.ID == 0 {
		d.ID = m.nextID
		m.nextID++
	} else if d.ID >= m.nextID {
		m.nextID = d.ID + 1
	}
	m.destinations[d.ID] = d
	return d
}

func (m *mockDestinationRepo) Create(_ context.Context, partnerID int64, req *domain.DestinationCreate) (*domain.Destination, error) {
	return m.add(&domain.Destination{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		PartnerID:   partnerID,
		CreatedAt:   time.Now(),
	}), nil
}

func (m *mockDestinationRepo) GetByID(_ context.Context, id int64) (*domain.Destination, error) {
	return m.destinations[id], nil
}

func (m *mockDestinationRepo) GetDetail(_ context.Context, id int64) (*domain.DestinationDetail, error) {
	d, ok := m.destinations[id]
	if !ok {
		return nil, nil
	}
	return &domain.DestinationDetail{
		Destination:   *d,
		Images:        m.images[id],
		AverageRating: m.ratings[id],
	}, nil
}

func (m *mockDestinationRepo) List(_ context.Context, limit, offset int) ([]domain.Destination, error) {
	out := make([]domain.Destination, 0, len(m.destinations))
	for _, d := range m.destinations {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockDestinationRepo) ListByPartner(_ context.Context, partnerID int64, limit, offset int) ([]domain.Destination, error) {
	var out []domain.Destination
	for _, d := range m.destinations {
		if d.PartnerID == partnerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *mockDestinationRepo) Update(_ context.Context, id int64, patch *domain.DestinationPatch) (*domain.Destination, error) {
	d, ok := m.destinations[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.Location != nil {
		d.Location = *patch.Location
	}
	if patch.Price != nil {
		d.Price = *patch.Price
	}
	return d, nil
}

func (m *mockDestinationRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.destinations[id]; !ok {
		return false, nil
	}
	delete(m.destinations, id)
	delete(m.images, id)
	return true, nil
}

func (m *mockDestinationRepo) AddImage(_ context.Context, destinationID int64, url string) (*domain.DestinationImage, error) {
	img := domain.DestinationImage{
		ID:            int64(len(m.images[destinationID]) + 1),
		DestinationID: destinationID,
		URL:           url,
		CreatedAt:     time.Now(),
	}
	m.images[destinationID] = append(m.images[destinationID], img)
	return &img, nil
}

func (m *mockDestinationRepo) AverageRating(_ context.Context, destinationID int64) (decimal.Decimal, error) {
	return m.ratings[destinationID], nil
}

func (m *mockDestinationRepo) ListCategories(_ context.Context) ([]domain.Category, error) {
	return m.categories, nil
}

func (m *mockDestinationRepo) CreateCategory(_ context.Context, name, description string) (*domain.Category, error) {
	c := domain.Category{ID: int64(len(m.categories) + 1), Name: name, Description: description}
	m.categories = append(m.categories, c)
	return &c, nil
}

func (m *mockDestinationRepo) ListActivitiesByCategory(_ context.Context, categoryID int64) ([]domain.Activity, error) {
	return nil, nil
}

// mockBookingRepo shares the wallet and notification mocks so the settlement
// path exercises the same all-or-nothing contract as the real transaction.
type mockBookingRepo struct {
	nextID        int64
	bookings      map[int64]*domain.Booking
	wallets       *mockWalletRepo
	notifications *mockNotificationRepo
}

func newMockBookingRepo(wallets *mockWalletRepo, notifications *mockNotificationRepo) *mockBookingRepo {
	return &mockBookingRepo{
		nextID:        1,
		bookings:      make(map[int64]*domain.Booking),
		wallets:       wallets,
		notifications: notifications,
	}
}

func (m *mockBookingRepo) insert(b *domain.Booking, paymentStatus domain.PaymentStatus) *domain.Booking {
	out := *b
	out.ID = m.nextID
	m.nextID++
	out.Status = domain.BookingPending
	out.PaymentStatus = paymentStatus
	out.BookingDate = time.Now()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	m.bookings[out.ID] = &out
	return &out
}

func (m *mockBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	return m.insert(b, domain.PaymentUnpaid), nil
}

func (m *mockBookingRepo) CreateWalletSettled(ctx context.Context, b *domain.Booking, notificationMsg string) (*domain.Booking, *domain.Notification, error) {
	ok, err := m.wallets.Deduct(ctx, b.UserID, b.TotalPrice)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, domain.ErrInsufficientFunds
	}
	created := m.insert(b, domain.PaymentPaid)
	notification := m.notifications.insert(b.UserID, notificationMsg)
	return created, notification, nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	return m.bookings[id], nil
}

func (m *mockBookingRepo) ListByUser(_ context.Context, userID int64, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockBookingRepo) List(_ context.Context, limit, offset int) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockBookingRepo) Cancel(_ context.Context, id int64) (bool, error) {
	b, ok := m.bookings[id]
	if !ok || b.Status == domain.BookingCanceled {
		return false, nil
	}
	b.Status = domain.BookingCanceled
	return true, nil
}

type mockReviewRepo struct {
	nextID        int64
	reviews       map[int64]*domain.Review
	notifications *mockNotificationRepo
}

func newMockReviewRepo(notifications *mockNotificationRepo) *mockReviewRepo {
	return &mockReviewRepo{nextID: 1, reviews: make(map[int64]*domain.Review), notifications: notifications}
}

func (m *mockReviewRepo) CreateWithNotification(_ context.Context, review *domain.Review, ownerID int64, notificationMsg string) (*domain.Review, *domain.Notification, error) {
	out := *review
	out.ID = m.nextID
	m.nextID++
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	m.reviews[out.ID] = &out
	notification := m.notifications.insert(ownerID, notificationMsg)
	return &out, notification, nil
}

func (m *mockReviewRepo) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	return m.reviews[id], nil
}

func (m *mockReviewRepo) Update(_ context.Context, id int64, patch *domain.ReviewPatch) (*domain.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, nil
	}
	if patch.Rating != nil {
		r.Rating = *patch.Rating
	}
	if patch.Content != nil {
		r.Content = *patch.Content
	}
	r.UpdatedAt = time.Now()
	return r, nil
}

func (m *mockReviewRepo) ListByDestination(_ context.Context, destinationID int64, limit, offset int) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range m.reviews {
		if r.DestinationID == destinationID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type mockRecommendationRepo struct {
	nextID          int64
	recommendations map[int64]*domain.Recommendation
	notifications   *mockNotificationRepo
}

func newMockRecommendationRepo(notifications *mockNotificationRepo) *mockRecommendationRepo {
	return &mockRecommendationRepo{
		nextID:          1,
		recommendations: make(map[int64]*domain.Recommendation),
		notifications:   notifications,
	}
}

func (m *mockRecommendationRepo) CreateWithNotification(_ context.Context, req *domain.RecommendationCreate, notificationMsg string) (*domain.Recommendation, *domain.Notification, error) {
	rec := &domain.Recommendation{
		ID:            m.nextID,
		UserID:        req.UserID,
		DestinationID: req.DestinationID,
		Score:         req.Score,
		ActivityIDs:   req.ActivityIDs,
		CreatedAt:     time.Now(),
	}
	m.nextID++
	m.recommendations[rec.ID] = rec
	notification := m.notifications.insert(req.UserID, notificationMsg)
	return rec, notification, nil
}

func (m *mockRecommendationRepo) ListByUser(_ context.Context, userID int64, limit, offset int) ([]domain.Recommendation, error) {
	var out []domain.Recommendation
	for _, r := range m.recommendations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}
