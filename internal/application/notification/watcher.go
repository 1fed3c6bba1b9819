package notification

import (
	"context"
	"log/slog"

	"github.com/propositos-api/internal/domain"
)

// Stream opens a live feed for one user. Every change to the broadcast
// collection, the campaign collection or the user's own overlay
// re-resolves the feed and pushes the result. The channel holds only
// the latest feed, so a slow consumer sees fresh state, not a backlog.
// The channel closes when ctx is cancelled or a content stream dies;
// the caller reconnects to resume.
func (s *service) Stream(ctx context.Context, userID string) (<-chan Feed, error) {
	p, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(chan Feed, 1)
	go s.watch(ctx, userID, p, out)
	return out, nil
}

func (s *service) watch(ctx context.Context, userID string, p Profile, out chan Feed) {
	defer close(out)

	bCh := s.broadcasts.Watch(ctx)
	cCh := s.campaigns.Watch(ctx)
	stCh := s.states.Watch(ctx, userID)

	var (
		broadcasts []domain.Broadcast
		campaigns  []domain.CampaignRule
		states     = map[string]domain.NotificationState{}
		haveB      bool
		haveC      bool
	)

	emit := func() {
		feed := Resolve(s.now(), p, broadcasts, campaigns, states)
		select {
		case <-out:
		default:
		}
		select {
		case out <- feed:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case bs, ok := <-bCh:
			if !ok {
				return
			}
			broadcasts, haveB = bs, true
		case cs, ok := <-cCh:
			if !ok {
				return
			}
			campaigns, haveC = cs, true
		case st, ok := <-stCh:
			if !ok {
				// Fail open: keep serving with the overlay we last saw.
				slog.Warn("notification state stream ended, keeping cached overlay", "user_id", userID)
				stCh = nil
				continue
			}
			states = st
		}
		// Hold the first emission until both content streams have
		// reported, otherwise the client briefly sees a partial feed.
		if haveB && haveC {
			emit()
		}
	}
}
