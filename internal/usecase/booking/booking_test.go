package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fitpulse/gym-api/internal/audit"
	domain "github.com/fitpulse/gym-api/internal/domain/booking"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/models"
	ucbooking "github.com/fitpulse/gym-api/internal/usecase/booking"
)

// fakeRepo mirrors the transactional store: ReserveSeat holds the lock
// across the duplicate check, the capacity re-check and the insert, the
// same atomic unit the GORM implementation gets from the row lock plus
// the unique index.
type fakeRepo struct {
	mu       sync.Mutex
	classes  map[uint]*models.GymClass
	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		classes:  make(map[uint]*models.GymClass),
		bookings: make(map[uint]*models.Booking),
	}
}

func (f *fakeRepo) addClass(gc models.GymClass) *models.GymClass {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	gc.ID = f.nextID
	f.classes[gc.ID] = &gc
	return &gc
}

func (f *fakeRepo) GetClass(_ context.Context, classID uint) (*models.GymClass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gc, ok := f.classes[classID]
	if !ok {
		return nil, httperr.ErrBusiness("class_not_found")
	}
	cp := *gc
	return &cp, nil
}

func (f *fakeRepo) HasBooking(_ context.Context, userID, classID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.findBookingLocked(userID, classID) != nil, nil
}

func (f *fakeRepo) findBookingLocked(userID, classID uint) *models.Booking {
	for _, b := range f.bookings {
		if b.UserID == userID && b.ClassID == classID {
			return b
		}
	}
	return nil
}

func (f *fakeRepo) countLocked(classID uint) int {
	n := 0
	for _, b := range f.bookings {
		if b.ClassID == classID {
			n++
		}
	}
	return n
}

func (f *fakeRepo) ReserveSeat(_ context.Context, userID, classID uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gc, ok := f.classes[classID]
	if !ok {
		return nil, httperr.ErrBusiness("class_not_found")
	}
	if f.countLocked(classID) >= gc.Capacity {
		return nil, httperr.ErrBusiness("class_full")
	}
	if f.findBookingLocked(userID, classID) != nil {
		return nil, httperr.ErrBusiness("already_booked")
	}

	f.nextID++
	b := &models.Booking{
		ID:        f.nextID,
		UserID:    userID,
		ClassID:   classID,
		CreatedAt: time.Now(),
	}
	f.bookings[b.ID] = b
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) GetBooking(_ context.Context, bookingID uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) DeleteBooking(_ context.Context, bookingID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.bookings[bookingID]; !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	delete(f.bookings, bookingID)
	return nil
}

func (f *fakeRepo) CountForClass(_ context.Context, classID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int64(f.countLocked(classID)), nil
}

func (f *fakeRepo) ListForUser(_ context.Context, userID uint) ([]domain.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Detail
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		gc := f.classes[b.ClassID]
		out = append(out, domain.Detail{
			BookingID: b.ID,
			CreatedAt: b.CreatedAt,
			Class: domain.ClassDetail{
				ID:           gc.ID,
				ServiceTitle: gc.ServiceTitle,
				DayOfWeek:    gc.DayOfWeek,
				StartTime:    gc.StartTime,
				EndTime:      gc.EndTime,
				Capacity:     gc.Capacity,
				BookedCount:  f.countLocked(gc.ID),
			},
		})
	}
	return out, nil
}

func (f *fakeRepo) ListClassesWithOccupancy(_ context.Context) ([]domain.ClassDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.ClassDetail
	for _, gc := range f.classes {
		out = append(out, domain.ClassDetail{
			ID:           gc.ID,
			ServiceTitle: gc.ServiceTitle,
			DayOfWeek:    gc.DayOfWeek,
			StartTime:    gc.StartTime,
			EndTime:      gc.EndTime,
			Capacity:     gc.Capacity,
			BookedCount:  f.countLocked(gc.ID),
		})
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func newEngine(t *testing.T) (*fakeRepo, *ucbooking.Reserve, *ucbooking.Cancel) {
	t.Helper()
	repo := newFakeRepo()
	var d *audit.Dispatcher // nil discards events
	return repo, ucbooking.NewReserve(repo, d), ucbooking.NewCancel(repo, d)
}

func TestReserveUnknownClass(t *testing.T) {
	_, reserve, _ := newEngine(t)

	_, err := reserve.Execute(context.Background(), 1, 999)
	if !httperr.IsBusiness(err, "class_not_found") {
		t.Fatalf("expected class_not_found, got %v", err)
	}
}

func TestReserveTwiceSameUser(t *testing.T) {
	repo, reserve, _ := newEngine(t)
	gc := repo.addClass(models.GymClass{ServiceTitle: "Yoga", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "10:00", Capacity: 10})

	ctx := context.Background()
	if _, err := reserve.Execute(ctx, 1, gc.ID); err != nil {
		t.Fatalf("first reserve: %v", err)
	}

	_, err := reserve.Execute(ctx, 1, gc.ID)
	if !httperr.IsBusiness(err, "already_booked") {
		t.Fatalf("expected already_booked, got %v", err)
	}

	if n, _ := repo.CountForClass(ctx, gc.ID); n != 1 {
		t.Fatalf("expected 1 booking, got %d", n)
	}
}

// Capacity invariant under contention: with capacity 5 and 12 racing
// users, exactly 5 reserves succeed and the booking count never exceeds
// capacity.
func TestReserveConcurrentRespectsCapacity(t *testing.T) {
	repo, reserve, _ := newEngine(t)
	gc := repo.addClass(models.GymClass{ServiceTitle: "Spin", DayOfWeek: "TUESDAY", StartTime: "18:00", EndTime: "19:00", Capacity: 5})

	const callers = 12
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reserve.Execute(ctx, uint(i+1), gc.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case httperr.IsBusiness(err, "class_full"):
		case httperr.IsBusiness(err, "already_booked"):
		default:
			t.Fatalf("caller %d: unexpected error %v", i, err)
		}
	}

	if succeeded != 5 {
		t.Fatalf("expected exactly 5 successful reserves, got %d", succeeded)
	}
	if n, _ := repo.CountForClass(ctx, gc.ID); n != 5 {
		t.Fatalf("expected 5 bookings, got %d", n)
	}
}

func TestCancelOwnership(t *testing.T) {
	repo, reserve, cancel := newEngine(t)
	gc := repo.addClass(models.GymClass{ServiceTitle: "Boxing", DayOfWeek: "FRIDAY", StartTime: "17:00", EndTime: "18:00", Capacity: 10})

	ctx := context.Background()
	b, err := reserve.Execute(ctx, 1, gc.ID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	err = cancel.Execute(ctx, b.ID, 2)
	if !httperr.IsBusiness(err, "not_booking_owner") {
		t.Fatalf("expected not_booking_owner, got %v", err)
	}

	// Booking must survive the rejected cancel.
	if _, err := repo.GetBooking(ctx, b.ID); err != nil {
		t.Fatalf("booking should still exist: %v", err)
	}
}

func TestCancelTwice(t *testing.T) {
	repo, reserve, cancel := newEngine(t)
	gc := repo.addClass(models.GymClass{ServiceTitle: "Pilates", DayOfWeek: "THURSDAY", StartTime: "08:00", EndTime: "09:00", Capacity: 10})

	ctx := context.Background()
	b, err := reserve.Execute(ctx, 1, gc.ID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	if err := cancel.Execute(ctx, b.ID, 1); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	err = cancel.Execute(ctx, b.ID, 1)
	if !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("expected booking_not_found on second cancel, got %v", err)
	}
}

// Capacity-1 lifecycle: A holds the seat, B is rejected, A cancels, B
// gets in.
func TestReserveAfterCancelFreesSeat(t *testing.T) {
	repo, reserve, cancel := newEngine(t)
	gc := repo.addClass(models.GymClass{ServiceTitle: "Yoga", DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "10:00", Capacity: 1})

	ctx := context.Background()

	bA, err := reserve.Execute(ctx, 1, gc.ID)
	if err != nil {
		t.Fatalf("user A reserve: %v", err)
	}

	_, err = reserve.Execute(ctx, 2, gc.ID)
	if !httperr.IsBusiness(err, "class_full") {
		t.Fatalf("expected class_full for user B, got %v", err)
	}

	if err := cancel.Execute(ctx, bA.ID, 1); err != nil {
		t.Fatalf("user A cancel: %v", err)
	}

	if _, err := reserve.Execute(ctx, 2, gc.ID); err != nil {
		t.Fatalf("user B reserve after cancel: %v", err)
	}
}

func TestListForUserOrdersByDayThenTime(t *testing.T) {
	repo, reserve, _ := newEngine(t)
	list := ucbooking.NewListForUser(repo)

	// Inserted out of order on purpose; WEDNESDAY < MONDAY
	// alphabetically, so a lexicographic sort would get this wrong.
	wed := repo.addClass(models.GymClass{ServiceTitle: "HIIT", DayOfWeek: "WEDNESDAY", StartTime: "07:00", EndTime: "08:00", Capacity: 10})
	monLate := repo.addClass(models.GymClass{ServiceTitle: "Yoga", DayOfWeek: "MONDAY", StartTime: "18:00", EndTime: "19:00", Capacity: 10})
	monEarly := repo.addClass(models.GymClass{ServiceTitle: "Spin", DayOfWeek: "MONDAY", StartTime: "07:30", EndTime: "08:30", Capacity: 10})

	ctx := context.Background()
	for _, gc := range []*models.GymClass{wed, monLate, monEarly} {
		if _, err := reserve.Execute(ctx, 1, gc.ID); err != nil {
			t.Fatalf("reserve %s: %v", gc.ServiceTitle, err)
		}
	}

	details, err := list.Execute(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(details) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(details))
	}

	want := []uint{monEarly.ID, monLate.ID, wed.ID}
	for i, w := range want {
		if details[i].Class.ID != w {
			t.Fatalf("position %d: got class %d, want %d", i, details[i].Class.ID, w)
		}
	}
}
