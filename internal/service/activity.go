package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ClubHub/internal/pkg"
)

const (
	ActivityClubCreated          = "club_created"
	ActivityClubDeleted          = "club_deleted"
	ActivityMemberJoined         = "member_joined"
	ActivityMemberLeft           = "member_left"
	ActivityMemberKicked         = "member_kicked"
	ActivityPostingGranted       = "posting_granted"
	ActivityPostingRevoked       = "posting_revoked"
	ActivityOwnershipTransferred = "ownership_transferred"
	ActivityUserDeleted          = "user_deleted"
	ActivityRoleChanged          = "role_changed"
)

// Publisher is satisfied by *pkg.KafkaProducer.
type Publisher interface {
	Send(ctx context.Context, key string, value []byte) error
}

type Activity struct {
	Type    string    `json:"type"`
	ActorID uint64    `json:"actor_id"`
	ClubID  uint64    `json:"club_id,omitempty"`
	UserID  uint64    `json:"user_id,omitempty"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// ActivityRecorder publishes committed club activity. Publishing is best
// effort: a failure is logged and never undoes or fails the operation.
type ActivityRecorder struct {
	pub Publisher
}

// NewActivityRecorder returns a recorder; a nil publisher disables it.
func NewActivityRecorder(pub Publisher) *ActivityRecorder {
	return &ActivityRecorder{pub: pub}
}

func (r *ActivityRecorder) Record(ctx context.Context, a Activity) {
	if r == nil || r.pub == nil {
		return
	}
	if a.At.IsZero() {
		a.At = time.Now().UTC()
	}
	body, err := json.Marshal(a)
	if err != nil {
		slog.Error("activity: marshal failed", "type", a.Type, "error", err)
		return
	}
	if err := r.pub.Send(ctx, pkg.ActivityKey(a.ClubID, a.UserID), body); err != nil {
		slog.Warn("activity: publish failed", "type", a.Type, "club_id", a.ClubID, "error", err)
	}
}
