package notification

import (
	"testing"
	"time"

	"github.com/propositos-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func broadcast(id string, created time.Time, target string) domain.Broadcast {
	return domain.Broadcast{
		BroadcastID: id,
		Title:       "title " + id,
		Description: "body " + id,
		Target:      target,
		CreatedAt:   created,
	}
}

func campaign(id string, created time.Time, trigger string, offset int, active bool) domain.CampaignRule {
	return domain.CampaignRule{
		CampaignID:  id,
		Name:        "rule " + id,
		Title:       "title " + id,
		Description: "body " + id,
		TriggerType: trigger,
		OffsetDays:  offset,
		IsActive:    active,
		CreatedAt:   created,
	}
}

func coupleProfile(signup time.Time) Profile {
	return Profile{Role: domain.RoleBride, CreatedAt: signup}
}

func feedIDs(f Feed) []string {
	ids := make([]string, 0, len(f.Items))
	for _, it := range f.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestResolve_SortsDescendingByCreatedAt(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	signup := at("2025-01-01T09:00:00Z")

	bs := []domain.Broadcast{
		broadcast("b-old", at("2025-02-01T10:00:00Z"), domain.TargetAll),
		broadcast("b-new", at("2025-06-01T10:00:00Z"), domain.TargetAll),
	}
	cs := []domain.CampaignRule{
		campaign("c-mid", at("2025-04-01T10:00:00Z"), domain.TriggerRelativeToSignup, 1, true),
	}

	feed := Resolve(now, coupleProfile(signup), bs, cs, nil)

	assert.Equal(t, []string{"b-new", "c-mid", "b-old"}, feedIDs(feed))
	for i := 1; i < len(feed.Items); i++ {
		assert.False(t, feed.Items[i].CreatedAt.After(feed.Items[i-1].CreatedAt),
			"feed must never ascend at position %d", i)
	}
}

func TestResolve_MillisecondOrdering(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	base := at("2025-06-01T10:00:00Z")

	bs := []domain.Broadcast{
		broadcast("b1", base.Add(1*time.Millisecond), domain.TargetAll),
		broadcast("b2", base.Add(2*time.Millisecond), domain.TargetAll),
		broadcast("b0", base, domain.TargetAll),
	}

	feed := Resolve(now, coupleProfile(at("2025-01-01T00:00:00Z")), bs, nil, nil)
	assert.Equal(t, []string{"b2", "b1", "b0"}, feedIDs(feed))
}

func TestResolve_DeletedNeverAppears(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	signup := at("2025-01-01T09:00:00Z")

	bs := []domain.Broadcast{broadcast("b1", at("2025-05-01T00:00:00Z"), domain.TargetAll)}
	cs := []domain.CampaignRule{campaign("c1", at("2025-05-02T00:00:00Z"), domain.TriggerRelativeToSignup, 1, true)}
	states := map[string]domain.NotificationState{
		"b1": {SourceID: "b1", Deleted: true, Read: true},
		"c1": {SourceID: "c1", Deleted: true},
	}

	feed := Resolve(now, coupleProfile(signup), bs, cs, states)

	assert.Empty(t, feed.Items)
	assert.Zero(t, feed.Unread)
}

func TestResolve_CouplesTargeting(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	bs := []domain.Broadcast{broadcast("b1", at("2025-05-01T00:00:00Z"), domain.TargetCouples)}

	for role, visible := range map[string]bool{
		domain.RoleGuest: false,
		domain.RoleBride: true,
		domain.RoleGroom: true,
		domain.RoleAdmin: true,
	} {
		feed := Resolve(now, Profile{Role: role, CreatedAt: at("2025-01-01T00:00:00Z")}, bs, nil, nil)
		if visible {
			assert.Len(t, feed.Items, 1, "role %s should see the couples broadcast", role)
		} else {
			assert.Empty(t, feed.Items, "role %s should not see the couples broadcast", role)
		}
	}
}

func TestResolve_MissingTargetGoesToEveryone(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	bs := []domain.Broadcast{broadcast("b1", at("2025-05-01T00:00:00Z"), "")}

	feed := Resolve(now, Profile{Role: domain.RoleGuest, CreatedAt: at("2025-01-01T00:00:00Z")}, bs, nil, nil)
	assert.Len(t, feed.Items, 1)
}

func TestResolve_UnknownTargetHiddenFromEveryone(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	bs := []domain.Broadcast{broadcast("b1", at("2025-05-01T00:00:00Z"), "vendors")}

	feed := Resolve(now, Profile{Role: domain.RoleAdmin, CreatedAt: at("2025-01-01T00:00:00Z")}, bs, nil, nil)
	assert.Empty(t, feed.Items)
}

func TestResolve_SignupOffsetBoundary(t *testing.T) {
	// Signup 2024-01-01 with offsetDays 5 means visible once 2024-01-06
	// (same clock time) has strictly passed.
	signup := at("2024-01-01T00:00:00Z")
	cs := []domain.CampaignRule{campaign("c1", at("2024-01-01T00:00:00Z"), domain.TriggerRelativeToSignup, 5, true)}

	atTrigger := Resolve(at("2024-01-06T00:00:00Z"), coupleProfile(signup), nil, cs, nil)
	assert.Empty(t, atTrigger.Items, "trigger equal to now must stay hidden")

	justAfter := Resolve(at("2024-01-06T00:00:00Z").Add(time.Millisecond), coupleProfile(signup), nil, cs, nil)
	assert.Len(t, justAfter.Items, 1)

	before := Resolve(at("2024-01-05T23:59:59Z"), coupleProfile(signup), nil, cs, nil)
	assert.Empty(t, before.Items)
}

func TestResolve_NegativeOffsetFiresBeforeAnchor(t *testing.T) {
	wedding := at("2025-09-20T00:00:00Z")
	p := Profile{Role: domain.RoleGroom, CreatedAt: at("2025-01-01T00:00:00Z"), WeddingDate: &wedding}
	cs := []domain.CampaignRule{campaign("c1", at("2025-01-02T00:00:00Z"), domain.TriggerRelativeToWeddingDate, -30, true)}

	visible := Resolve(at("2025-09-01T00:00:00Z"), p, nil, cs, nil)
	assert.Len(t, visible.Items, 1)

	tooEarly := Resolve(at("2025-08-01T00:00:00Z"), p, nil, cs, nil)
	assert.Empty(t, tooEarly.Items)
}

func TestResolve_WeddingDateCampaignSkippedWithoutDate(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	p := Profile{Role: domain.RoleBride, CreatedAt: at("2025-01-01T00:00:00Z")}
	cs := []domain.CampaignRule{campaign("c1", at("2025-01-02T00:00:00Z"), domain.TriggerRelativeToWeddingDate, -10, true)}

	feed := Resolve(now, p, nil, cs, nil)
	assert.Empty(t, feed.Items)
}

func TestResolve_InactiveCampaignNeverMaterializes(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	cs := []domain.CampaignRule{campaign("c1", at("2025-01-02T00:00:00Z"), domain.TriggerRelativeToSignup, 1, false)}

	feed := Resolve(now, coupleProfile(at("2025-01-01T00:00:00Z")), nil, cs, nil)
	assert.Empty(t, feed.Items)
}

func TestResolve_TriggeredCampaignNeverExpires(t *testing.T) {
	// Years past the trigger the campaign is still in the feed.
	signup := at("2020-01-01T00:00:00Z")
	cs := []domain.CampaignRule{campaign("c1", at("2020-01-01T00:00:00Z"), domain.TriggerRelativeToSignup, 3, true)}

	feed := Resolve(at("2025-06-10T12:00:00Z"), coupleProfile(signup), nil, cs, nil)
	assert.Len(t, feed.Items, 1)
}

func TestResolve_CampaignSortsByRuleCreationNotTrigger(t *testing.T) {
	// The campaign triggered back in February, but the rule itself was
	// created in June, so it outranks a May broadcast.
	now := at("2025-06-10T12:00:00Z")
	signup := at("2025-01-01T00:00:00Z")

	bs := []domain.Broadcast{broadcast("b1", at("2025-05-01T00:00:00Z"), domain.TargetAll)}
	cs := []domain.CampaignRule{campaign("c1", at("2025-06-05T00:00:00Z"), domain.TriggerRelativeToSignup, 30, true)}

	feed := Resolve(now, coupleProfile(signup), bs, cs, nil)
	assert.Equal(t, []string{"c1", "b1"}, feedIDs(feed))
}

func TestResolve_UnreadCountMatchesUnreadItems(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	signup := at("2025-01-01T00:00:00Z")

	bs := []domain.Broadcast{
		broadcast("b1", at("2025-05-01T00:00:00Z"), domain.TargetAll),
		broadcast("b2", at("2025-05-02T00:00:00Z"), domain.TargetAll),
		broadcast("b3", at("2025-05-03T00:00:00Z"), domain.TargetAll),
	}
	states := map[string]domain.NotificationState{
		"b2": {SourceID: "b2", Read: true},
		"b3": {SourceID: "b3", Deleted: true},
	}

	feed := Resolve(now, coupleProfile(signup), bs, nil, states)

	require.Len(t, feed.Items, 2)
	assert.Equal(t, 1, feed.Unread)

	unread := 0
	for _, it := range feed.Items {
		if !it.IsRead {
			unread++
		}
	}
	assert.Equal(t, unread, feed.Unread)
}

func TestResolve_NilStatesTreatedAsUnseen(t *testing.T) {
	now := at("2025-06-10T12:00:00Z")
	bs := []domain.Broadcast{broadcast("b1", at("2025-05-01T00:00:00Z"), domain.TargetAll)}

	feed := Resolve(now, coupleProfile(at("2025-01-01T00:00:00Z")), bs, nil, nil)

	require.Len(t, feed.Items, 1)
	assert.False(t, feed.Items[0].IsRead)
	assert.Equal(t, 1, feed.Unread)
}

func TestResolve_EmptyFeedMarshalsToEmptySlice(t *testing.T) {
	feed := Resolve(at("2025-06-10T12:00:00Z"), coupleProfile(at("2025-01-01T00:00:00Z")), nil, nil, nil)
	require.NotNil(t, feed.Items)
	assert.Empty(t, feed.Items)
}
