package eventview

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// Identity is the caller as seen by the transport layer.
type Identity interface {
	IsSignedIn() bool
	UserID() string
}

// DataAccess is the read side WithUser needs.
// GetUser returns (nil, nil) when the user has no profile.
type DataAccess interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetEventSignups(ctx context.Context, eventID int, userID string) ([]domain.EventSignup, error)
}
