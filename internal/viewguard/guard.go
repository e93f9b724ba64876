// Package viewguard tracks which (session, post) pairs have already been
// counted, so a browsing session increments a post's view counter at most
// once within the guard TTL.
package viewguard

import "context"

// Guard records first sightings of (session, post) pairs. FirstView returns
// true exactly once per pair per TTL window; implementations must make the
// check-and-mark atomic so concurrent calls for the same pair cannot both
// see "first".
type Guard interface {
	// FirstView marks the pair as seen and reports whether this call was
	// the first sighting within the TTL window.
	FirstView(ctx context.Context, sessionKey, postID string) (bool, error)

	// Release forgets the pair, allowing the next FirstView to count again.
	// Used to back out the mark when the increment that followed it failed.
	Release(ctx context.Context, sessionKey, postID string)
}

func guardKey(sessionKey, postID string) string {
	return "viewguard:" + sessionKey + ":" + postID
}
