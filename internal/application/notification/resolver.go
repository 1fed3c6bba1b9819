package notification

import (
	"sort"
	"time"

	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/pkg/dates"
)

// Profile carries the per-user facts the resolver needs.
type Profile struct {
	Role        string
	CreatedAt   time.Time
	WeddingDate *time.Time
}

// Feed is the resolved notification list for one user, newest first, plus
// its unread count.
type Feed struct {
	Items  []domain.ResolvedNotification `json:"items"`
	Unread int                           `json:"unread"`
}

// Resolve merges admin broadcasts and campaign rules with the user's overlay
// into the feed the client renders. It is pure: the result depends only on
// its arguments, so watchers can re-run it on every snapshot.
func Resolve(now time.Time, profile Profile, broadcasts []domain.Broadcast, campaigns []domain.CampaignRule, states map[string]domain.NotificationState) Feed {
	items := make([]domain.ResolvedNotification, 0, len(broadcasts)+len(campaigns))

	couple := domain.IsCouple(profile.Role) || profile.Role == domain.RoleAdmin
	for _, b := range broadcasts {
		st := states[b.BroadcastID]
		if st.Deleted {
			continue
		}
		// Documents written before audience targeting existed carry no
		// target and go to everyone.
		target := b.Target
		if target == "" {
			target = domain.TargetAll
		}
		switch target {
		case domain.TargetAll:
		case domain.TargetCouples:
			if !couple {
				continue
			}
		default:
			continue
		}
		items = append(items, domain.ResolvedNotification{
			ID:          b.BroadcastID,
			Title:       b.Title,
			Description: b.Description,
			ButtonLabel: b.ButtonLabel,
			ButtonURL:   b.ButtonURL,
			CreatedAt:   b.CreatedAt,
			IsRead:      st.Read,
		})
	}

	for _, c := range campaigns {
		if !c.IsActive {
			continue
		}
		st := states[c.CampaignID]
		if st.Deleted {
			continue
		}
		trigger, ok := triggerDate(c, profile)
		if !ok {
			continue
		}
		// Strictly past triggers only; a campaign due exactly now stays
		// hidden until the next evaluation. Once visible it never expires.
		if !trigger.Before(now) {
			continue
		}
		items = append(items, domain.ResolvedNotification{
			ID:          c.CampaignID,
			Title:       c.Title,
			Description: c.Description,
			ButtonLabel: c.ButtonLabel,
			ButtonURL:   c.ButtonURL,
			CreatedAt:   c.CreatedAt,
			IsRead:      st.Read,
			IsCampaign:  true,
		})
	}

	// The sort key is always the record's own createdAt, never a campaign's
	// trigger date. Stable keeps equal-timestamp items in a fixed order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	unread := 0
	for _, it := range items {
		if !it.IsRead {
			unread++
		}
	}
	return Feed{Items: items, Unread: unread}
}

// triggerDate computes when a campaign fires for this user. The second
// return is false when the rule cannot apply to them, e.g. a wedding-date
// anchor with no wedding date set.
func triggerDate(c domain.CampaignRule, p Profile) (time.Time, bool) {
	switch c.TriggerType {
	case domain.TriggerRelativeToSignup:
		return dates.AddDays(p.CreatedAt, c.OffsetDays), true
	case domain.TriggerRelativeToWeddingDate:
		if p.WeddingDate == nil {
			return time.Time{}, false
		}
		return dates.AddDays(*p.WeddingDate, c.OffsetDays), true
	default:
		return time.Time{}, false
	}
}
