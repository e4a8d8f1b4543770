package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"ClubHub/internal/model"
	"ClubHub/internal/permission"
	"ClubHub/internal/pkg"
	"ClubHub/internal/repository/redis"
	"ClubHub/internal/testutil"

	"gorm.io/gorm"
)

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
	got  []Activity
}

func (f *fakePublisher) Send(_ context.Context, key string, value []byte) error {
	var a Activity
	if err := json.Unmarshal(value, &a); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	f.got = append(f.got, a)
	return nil
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.got))
	for _, a := range f.got {
		out = append(out, a.Type)
	}
	return out
}

type fakeSessions struct {
	mu     sync.Mutex
	tokens map[uint64]string
}

func newFakeSessions() *fakeSessions { return &fakeSessions{tokens: map[uint64]string{}} }

func (f *fakeSessions) Save(_ context.Context, userID uint64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[userID] = token
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, userID)
	return nil
}

func (f *fakeSessions) has(userID uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tokens[userID]
	return ok
}

type fakeCodes struct {
	codes map[string]string
}

func (f *fakeCodes) Save(_ context.Context, email, code string) error {
	f.codes[email] = code
	return nil
}

func (f *fakeCodes) Consume(_ context.Context, email, code string) error {
	if got, ok := f.codes[email]; !ok || got != code {
		return redis.ErrCodeMismatch
	}
	delete(f.codes, email)
	return nil
}

func (f *fakeCodes) CodeTTL() time.Duration { return 5 * time.Minute }

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

type env struct {
	db       *gorm.DB
	pub      *fakePublisher
	sessions *fakeSessions
	codes    *fakeCodes
	mailer   *fakeMailer

	clubs      *ClubService
	membership *MembershipService
	posts      *PostService
	events     *EventService
	users      *UserService
	admin      *AdminService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	e := &env{
		db:       db,
		pub:      &fakePublisher{},
		sessions: newFakeSessions(),
		codes:    &fakeCodes{codes: map[string]string{}},
		mailer:   &fakeMailer{},
	}
	activity := NewActivityRecorder(e.pub)
	e.clubs = NewClubService(db, activity)
	e.membership = NewMembershipService(db, activity)
	e.posts = NewPostService(db)
	e.events = NewEventService(db)
	e.users = NewUserService(db, UserDeps{
		Tokens:   testTokens,
		Sessions: e.sessions,
		Codes:    e.codes,
		Mailer:   e.mailer,
		Activity: activity,
	})
	e.admin = NewAdminService(db, e.sessions, activity)
	return e
}

func (e *env) user(t *testing.T, name string) permission.Actor {
	t.Helper()
	return actorOf(testutil.CreateUser(t, e.db, name, model.RoleMember))
}

func (e *env) superadmin(t *testing.T, name string) permission.Actor {
	t.Helper()
	return actorOf(testutil.CreateUser(t, e.db, name, model.RoleSuperAdmin))
}

var testTokens = pkg.NewTokenIssuer("test-access", "test-refresh", time.Minute, time.Hour)

func actorOf(u *model.User) permission.Actor {
	return permission.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}
