package notifications

import (
	"crypto/sha1"
	"encoding/hex"

	mapset "github.com/deckarep/golang-set/v2"
)

type Notification struct {
	Message string `json:"message"`
	Time    string `json:"time"`
}

// Key identifies a notification across fetches. The service assigns no ids, so the key is
// derived from the content.
func (n Notification) Key() string {
	sum := sha1.Sum([]byte(n.Time + "\x00" + n.Message))
	return hex.EncodeToString(sum[:8])
}

type Item struct {
	Key string
	Notification
}

// Visible returns the notifications that were not dismissed, preserving their order
func Visible(list []Notification, dismissed []string) []Item {
	hidden := mapset.NewThreadUnsafeSet(dismissed...)
	items := make([]Item, 0, len(list))
	for _, n := range list {
		key := n.Key()
		if hidden.Contains(key) {
			continue
		}
		items = append(items, Item{Key: key, Notification: n})
	}
	return items
}

// Dismiss adds key to the dismissed keys. Keys that were already dismissed are not repeated.
func Dismiss(dismissed []string, key string) []string {
	if key == "" || mapset.NewThreadUnsafeSet(dismissed...).Contains(key) {
		return dismissed
	}
	return append(dismissed, key)
}

// Prune drops dismissed keys that no longer refer to a notification of the list
func Prune(list []Notification, dismissed []string) []string {
	present := mapset.NewThreadUnsafeSetWithSize[string](len(list))
	for _, n := range list {
		present.Add(n.Key())
	}
	kept := make([]string, 0, len(dismissed))
	for _, key := range dismissed {
		if present.Contains(key) {
			kept = append(kept, key)
		}
	}
	return kept
}
