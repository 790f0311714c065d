package trailhead

import "sort"

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by trailhead.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// Key returns the raw key so it can be used as a key in a map[string].
func (k Key) Key() string { return string(k) }

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "trailhead context key: " + string(k)
}

// ByKey sorts Keys lexically.
type ByKey []Key

var _ sort.Interface = ByKey{}

func (k ByKey) Len() int           { return len(k) }
func (k ByKey) Swap(i, j int)      { k[i], k[j] = k[j], k[i] }
func (k ByKey) Less(i, j int) bool { return k[i] < k[j] }

// UniqueSort sorts the keys and drops duplicates and zero-values.
func (k ByKey) UniqueSort() ByKey {
	uniq := make(ByKey, 0, len(k))
	seen := make(map[Key]bool, len(k))
	for _, key := range k {
		if key == "" || seen[key] {
			continue
		}

		seen[key] = true
		uniq = append(uniq, key)
	}

	sort.Sort(uniq)
	return uniq
}
