package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ClubHub/internal/model"
	"ClubHub/internal/permission"
	"ClubHub/internal/pkg"
	"ClubHub/internal/repository/mysql"
	"ClubHub/internal/repository/redis"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MinPasswordLen = 8

	accountTaken   = "That username or email is already taken."
	badCredentials = "Invalid email or password."
	badResetCode   = "The reset code is invalid or has expired."
)

// SessionStore keeps the live access token of each user.
type SessionStore interface {
	Save(ctx context.Context, userID uint64, token string) error
	Delete(ctx context.Context, userID uint64) error
}

// CodeStore keeps one-time password reset codes.
type CodeStore interface {
	Save(ctx context.Context, email, code string) error
	Consume(ctx context.Context, email, code string) error
	CodeTTL() time.Duration
}

type UserDeps struct {
	Tokens   *pkg.TokenIssuer
	Sessions SessionStore
	Codes    CodeStore
	Mailer   pkg.Mailer
	Activity *ActivityRecorder
}

type UserService struct {
	users    *mysql.UserRepository
	clubs    *mysql.ClubRepository
	members  *mysql.ClubMemberRepository
	tokens   *pkg.TokenIssuer
	sessions SessionStore
	codes    CodeStore
	mailer   pkg.Mailer
	activity *ActivityRecorder
	validate *validator.Validate
}

func NewUserService(db *gorm.DB, deps UserDeps) *UserService {
	return &UserService{
		users:    &mysql.UserRepository{DB: db},
		clubs:    &mysql.ClubRepository{DB: db},
		members:  &mysql.ClubMemberRepository{DB: db},
		tokens:   deps.Tokens,
		sessions: deps.Sessions,
		codes:    deps.Codes,
		mailer:   deps.Mailer,
		activity: deps.Activity,
		validate: validator.New(),
	}
}

type Profile struct {
	User   *model.User        `json:"user"`
	Owned  []model.Club       `json:"owned_clubs"`
	Joined []model.JoinedClub `json:"joined_clubs"`
}

func (s *UserService) validEmail(email string) bool {
	return s.validate.Var(email, "required,email") == nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", pkg.Persistence(err)
	}
	return string(hash), nil
}

// endSession drops the user's live token. Failures are logged only.
func endSession(ctx context.Context, sessions SessionStore, userID uint64) {
	if sessions == nil {
		return
	}
	if err := sessions.Delete(ctx, userID); err != nil {
		slog.Warn("session: delete failed", "user_id", userID, "error", err)
	}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)

	var problems []string
	if username == "" {
		problems = append(problems, "Username is required.")
	}
	if !s.validEmail(email) {
		problems = append(problems, "A valid email is required.")
	}
	if len(password) < MinPasswordLen {
		problems = append(problems, fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLen))
	}
	if len(problems) > 0 {
		return nil, pkg.Validation(strings.Join(problems, " "))
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{Username: username, Email: email, PasswordHash: hash, Role: model.RoleMember}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError(err, "", accountTaken)
	}
	return user, nil
}

// Login checks the credentials and opens a session, replacing any session
// the user had elsewhere.
func (s *UserService) Login(ctx context.Context, email, password string) (*pkg.Pair, *model.User, error) {
	email = strings.TrimSpace(email)
	if err := required(field("Email", email), field("Password", password)); err != nil {
		return nil, nil, err
	}
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, pkg.Forbidden(badCredentials)
	}
	if err != nil {
		return nil, nil, storeError(err, "", "")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, pkg.Forbidden(badCredentials)
	}
	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *UserService) openSession(ctx context.Context, user *model.User) (*pkg.Pair, error) {
	pair, err := s.tokens.GeneratePair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, pkg.Persistence(err)
	}
	if err := s.sessions.Save(ctx, user.ID, pair.AccessToken); err != nil {
		return nil, pkg.Persistence(err)
	}
	return pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint64) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return pkg.Persistence(err)
	}
	return nil
}

// Refresh issues a new pair from a refresh token. The user is read again so
// that renames and role changes are picked up.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, pkg.Forbidden("Your session has expired. Please log in again.")
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.Forbidden("Your session has expired. Please log in again.")
	}
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return s.openSession(ctx, user)
}

func (s *UserService) Profile(ctx context.Context, actor permission.Actor) (*Profile, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, storeError(err, "User not found.", "")
	}
	owned, err := s.clubs.ListOwned(ctx, actor.ID)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	joined, err := s.members.ListJoined(ctx, actor.ID)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return &Profile{User: user, Owned: owned, Joined: joined}, nil
}

// UpdateProfile renames the actor and ends the current session.
func (s *UserService) UpdateProfile(ctx context.Context, actor permission.Actor, username, email string) (int64, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if err := required(field("Username", username), field("Email", email)); err != nil {
		return 0, err
	}
	if !s.validEmail(email) {
		return 0, pkg.Validation("A valid email is required.")
	}
	n, err := s.users.UpdateProfile(ctx, actor.ID, username, email)
	if err != nil {
		return 0, storeError(err, "User not found.", accountTaken)
	}
	// the live token still carries the old username
	endSession(ctx, s.sessions, actor.ID)
	return n, nil
}

// ChangePassword replaces the password and ends the current session.
func (s *UserService) ChangePassword(ctx context.Context, actor permission.Actor, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return storeError(err, "User not found.", "")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return pkg.Validation("Current password is incorrect.")
	}
	if len(newPassword) < MinPasswordLen {
		return pkg.Validation(fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLen))
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return storeError(err, "User not found.", "")
	}
	endSession(ctx, s.sessions, user.ID)
	return nil
}

// DeleteAccount removes the actor and everything they own. Asking the user
// to type their username is left to the caller.
func (s *UserService) DeleteAccount(ctx context.Context, actor permission.Actor) (int64, error) {
	n, err := s.users.Delete(ctx, actor.ID)
	if err != nil {
		return 0, storeError(err, "User not found.", "")
	}
	if n == 0 {
		return 0, pkg.NotFound("User not found.")
	}
	endSession(ctx, s.sessions, actor.ID)
	s.activity.Record(ctx, Activity{Type: ActivityUserDeleted, ActorID: actor.ID, UserID: actor.ID})
	return n, nil
}

// SendResetCode mails a one-time code to email. Unknown addresses get the
// same answer as known ones.
func (s *UserService) SendResetCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !s.validEmail(email) {
		return pkg.Validation("A valid email is required.")
	}
	if s.codes == nil || s.mailer == nil {
		return pkg.Persistence(errors.New("password reset is not configured"))
	}
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return storeError(err, "", "")
	}

	code, err := pkg.NewResetCode()
	if err != nil {
		return pkg.Persistence(err)
	}
	if err := s.codes.Save(ctx, email, code); err != nil {
		return pkg.Persistence(err)
	}
	body := pkg.ResetCodeHTML(user.Username, code, s.codes.CodeTTL())
	if err := s.mailer.Send(email, "Your ClubHub password reset code", body); err != nil {
		return pkg.Persistence(err)
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email, code = strings.TrimSpace(email), strings.TrimSpace(code)
	if err := required(field("Email", email), field("Code", code)); err != nil {
		return err
	}
	if len(newPassword) < MinPasswordLen {
		return pkg.Validation(fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLen))
	}
	if s.codes == nil {
		return pkg.Persistence(errors.New("password reset is not configured"))
	}
	if err := s.codes.Consume(ctx, email, code); err != nil {
		if errors.Is(err, redis.ErrCodeMismatch) {
			return pkg.Validation(badResetCode)
		}
		return pkg.Persistence(err)
	}
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.Validation(badResetCode)
	}
	if err != nil {
		return storeError(err, "", "")
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return storeError(err, "User not found.", "")
	}
	endSession(ctx, s.sessions, user.ID)
	return nil
}

// EnsureSuperAdmin creates the default superadmin account if no account uses
// email, and promotes it if one does. An empty password skips seeding.
func (s *UserService) EnsureSuperAdmin(ctx context.Context, username, email, password string) error {
	if password == "" {
		slog.Warn("superadmin seed skipped: no password configured", "email", email)
		return nil
	}
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == model.RoleSuperAdmin {
			return nil
		}
		_, err = s.users.UpdateRole(ctx, existing.ID, model.RoleSuperAdmin)
		return storeError(err, "", "")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return storeError(err, "", "")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := &model.User{Username: username, Email: email, PasswordHash: hash, Role: model.RoleSuperAdmin}
	if err := s.users.Create(ctx, admin); err != nil {
		return storeError(err, "", accountTaken)
	}
	slog.Info("superadmin account created", "username", username, "email", email)
	return nil
}

// Account returns the actor's current account row.
func (s *UserService) Account(ctx context.Context, actor permission.Actor) (*model.User, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, storeError(err, "User not found.", "")
	}
	return user, nil
}
