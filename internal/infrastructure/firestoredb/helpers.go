package firestoredb

import (
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// isNotFound reports whether err is the gRPC NotFound returned when a
// document ref does not exist.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// isAlreadyExists reports whether err came from a Create on an existing doc.
func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// isCanceled reports whether err is the cancellation a snapshot listener
// returns when its context ends.
func isCanceled(err error) bool {
	return status.Code(err) == codes.Canceled
}

// buildUpdates converts a field->value map into firestore.Update entries,
// sorted by path so update calls are deterministic.
func buildUpdates(updates map[string]interface{}) ([]firestore.Update, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	paths := make([]string, 0, len(updates))
	for p := range updates {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]firestore.Update, 0, len(paths))
	for _, p := range paths {
		out = append(out, firestore.Update{Path: p, Value: updates[p]})
	}
	return out, nil
}
