package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/fitpulse/gym-api/internal/domain/user"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/models"
	"github.com/fitpulse/gym-api/internal/session"
	"github.com/fitpulse/gym-api/internal/usecase/auth"
)

const testSecret = "test-secret"

type fakeUsers struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[uint]*models.User), nextID: 1}
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness("user_not_found")
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == u.Email {
			return httperr.ErrBusiness("email_taken")
		}
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[u.ID]; !ok {
		return httperr.ErrBusiness("user_not_found")
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) UpdateName(_ context.Context, id uint, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	u.Name = name
	cp := *u
	return &cp, nil
}

var _ domain.Repository = (*fakeUsers)(nil)

func seedUser(t *testing.T, repo *fakeUsers, email, password string, forced bool) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &models.User{
		Name:                   "Test User",
		Email:                  email,
		PasswordHash:           string(hashed),
		Role:                   models.RoleMember,
		RequiresPasswordChange: forced,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsers()
	sessions := session.NewMemoryStore()

	u, err := auth.NewSignUp(repo).Execute(ctx, "Ana", "Ana@Example.com ", "s3cret")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Role != models.RoleMember {
		t.Fatalf("role = %q, want MEMBER", u.Role)
	}
	if u.RequiresPasswordChange {
		t.Fatal("self-service signup must not require a password change")
	}

	signIn := auth.NewSignIn(repo, sessions, testSecret, time.Hour)
	got, token, err := signIn.Execute(ctx, "ANA@example.com", "s3cret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if got.ID != u.ID {
		t.Fatalf("signed in as user %d, want %d", got.ID, u.ID)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsers()
	seedUser(t, repo, "ana@example.com", "s3cret", false)

	_, err := auth.NewSignUp(repo).Execute(ctx, "Ana Again", "ana@example.com", "other")
	if !httperr.IsBusiness(err, "email_taken") {
		t.Fatalf("expected email_taken, got %v", err)
	}
}

// Unknown email and wrong password must produce the same error so the
// endpoint cannot be used to probe which emails are registered.
func TestSignInBadCredentials(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsers()
	sessions := session.NewMemoryStore()
	seedUser(t, repo, "ana@example.com", "s3cret", false)

	signIn := auth.NewSignIn(repo, sessions, testSecret, time.Hour)

	_, _, err := signIn.Execute(ctx, "nobody@example.com", "s3cret")
	if !httperr.IsBusiness(err, "invalid_credentials") {
		t.Fatalf("unknown email: expected invalid_credentials, got %v", err)
	}

	_, _, err = signIn.Execute(ctx, "ana@example.com", "wrong")
	if !httperr.IsBusiness(err, "invalid_credentials") {
		t.Fatalf("wrong password: expected invalid_credentials, got %v", err)
	}
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsers()
	u := seedUser(t, repo, "ana@example.com", "s3cret", false)

	uc := auth.NewChangePassword(repo)

	err := uc.Execute(ctx, u.ID, "wrong", "newpass")
	if !httperr.IsBusiness(err, "invalid_credentials") {
		t.Fatalf("expected invalid_credentials, got %v", err)
	}

	if err := uc.Execute(ctx, u.ID, "s3cret", "newpass"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	stored, err := repo.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass")) != nil {
		t.Fatal("new password not stored")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")) == nil {
		t.Fatal("old password still valid")
	}
}

func TestForcedSetupSkipsCurrentPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsers()
	sessions := session.NewMemoryStore()
	u := seedUser(t, repo, "trainer@example.com", "provisioned", true)

	oldSID := session.NewID()
	if err := sessions.Save(ctx, oldSID, u.ID, time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}

	uc := auth.NewCompleteForcedPasswordSetup(repo, sessions, testSecret, time.Hour)

	updated, token, err := uc.Execute(ctx, u.ID, oldSID, "chosen-password")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if token == "" {
		t.Fatal("expected a fresh token")
	}
	if updated.RequiresPasswordChange {
		t.Fatal("flag should be cleared after setup")
	}

	if _, alive, _ := sessions.UserID(ctx, oldSID); alive {
		t.Fatal("old session should be revoked")
	}

	stored, err := repo.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.RequiresPasswordChange {
		t.Fatal("flag not persisted")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("chosen-password")) != nil {
		t.Fatal("chosen password not stored")
	}
}

func TestForcedSetupRejectedWhenNotRequired(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsers()
	sessions := session.NewMemoryStore()
	u := seedUser(t, repo, "ana@example.com", "s3cret", false)

	uc := auth.NewCompleteForcedPasswordSetup(repo, sessions, testSecret, time.Hour)

	_, _, err := uc.Execute(ctx, u.ID, "", "newpass")
	if !httperr.IsBusiness(err, "password_change_not_required") {
		t.Fatalf("expected password_change_not_required, got %v", err)
	}
}

func TestUpdateNameRejectsBlank(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsers()
	u := seedUser(t, repo, "ana@example.com", "s3cret", false)

	uc := auth.NewUpdateName(repo)

	if _, err := uc.Execute(ctx, u.ID, "   "); !httperr.IsBusiness(err, "invalid_request") {
		t.Fatalf("expected invalid_request, got %v", err)
	}

	got, err := uc.Execute(ctx, u.ID, "  Ana Souza ")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Name != "Ana Souza" {
		t.Fatalf("name = %q, want trimmed", got.Name)
	}
}
