package firestoredb

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/propositos-api/internal/domain"
	"google.golang.org/api/iterator"
)

// StateRepo operates on the per-user notification overlay, stored as a
// subcollection under each user document: users/{uid}/notification_states/{id}.
// Overlay docs are sparse; an absent doc means unread and not deleted.
type StateRepo struct {
	client    *firestore.Client
	usersCol  string
	statesCol string
}

func NewStateRepo(client *firestore.Client, usersCol, statesCol string) *StateRepo {
	return &StateRepo{client: client, usersCol: usersCol, statesCol: statesCol}
}

func (r *StateRepo) states(userID string) *firestore.CollectionRef {
	return r.client.Collection(r.usersCol).Doc(userID).Collection(r.statesCol)
}

// ListByUser returns the full overlay map for one user.
func (r *StateRepo) ListByUser(ctx context.Context, userID string) (map[string]domain.NotificationState, error) {
	iter := r.states(userID).Documents(ctx)
	defer iter.Stop()
	out := make(map[string]domain.NotificationState)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list notification states: %w", err)
		}
		st, err := decodeState(snap)
		if err != nil {
			return nil, err
		}
		out[st.SourceID] = *st
	}
	return out, nil
}

// MarkRead flips the read flag via a merge upsert, leaving any deleted flag
// untouched. Idempotent.
func (r *StateRepo) MarkRead(ctx context.Context, userID, sourceID string) error {
	_, err := r.states(userID).Doc(sourceID).Set(ctx, map[string]interface{}{fieldRead: true}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("mark read %s: %w", sourceID, err)
	}
	return nil
}

// MarkDeleted flips the deleted flag via a merge upsert, leaving any read
// flag untouched. Idempotent; there is no way back.
func (r *StateRepo) MarkDeleted(ctx context.Context, userID, sourceID string) error {
	_, err := r.states(userID).Doc(sourceID).Set(ctx, map[string]interface{}{fieldDeleted: true}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("mark deleted %s: %w", sourceID, err)
	}
	return nil
}

// MarkAllRead batches read upserts for many source ids through a BulkWriter.
func (r *StateRepo) MarkAllRead(ctx context.Context, userID string, sourceIDs []string) error {
	if len(sourceIDs) == 0 {
		return nil
	}
	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(sourceIDs))
	for _, sid := range sourceIDs {
		job, err := bw.Set(r.states(userID).Doc(sid), map[string]interface{}{fieldRead: true}, firestore.MergeAll)
		if err != nil {
			bw.End()
			return fmt.Errorf("queue mark read %s: %w", sid, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("mark all read: %w", err)
		}
	}
	return nil
}

// Watch streams the full overlay map on every change until ctx ends, keeping
// only the latest snapshot for a slow consumer.
func (r *StateRepo) Watch(ctx context.Context, userID string) <-chan map[string]domain.NotificationState {
	ch := make(chan map[string]domain.NotificationState, 1)
	go func() {
		defer close(ch)
		snaps := r.states(userID).Snapshots(ctx)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if !isCanceled(err) {
					slog.Warn("state watch stopped", "user_id", userID, "err", err)
				}
				return
			}
			docs, err := qs.Documents.GetAll()
			if err != nil {
				slog.Warn("state watch read failed", "user_id", userID, "err", err)
				continue
			}
			out := make(map[string]domain.NotificationState, len(docs))
			for _, d := range docs {
				st, err := decodeState(d)
				if err != nil {
					slog.Warn("state watch decode failed", "err", err)
					continue
				}
				out[st.SourceID] = *st
			}
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- out:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func decodeState(snap *firestore.DocumentSnapshot) (*domain.NotificationState, error) {
	var st domain.NotificationState
	if err := snap.DataTo(&st); err != nil {
		return nil, fmt.Errorf("decode notification state %s: %w", snap.Ref.ID, err)
	}
	st.SourceID = snap.Ref.ID
	return &st, nil
}
