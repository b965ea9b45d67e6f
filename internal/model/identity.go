package model

import "fmt"

// Identity identifies a chat participant. Nick is the visible name and may
// change over a session's lifetime; User and Host come from the chat network
// and are stable, so Key() prefers them when present.
type Identity struct {
	Nick string
	User string
	Host string
}

// Key returns the de-duplication key used for roster lookups, the score
// ledger and idle-ban counters. A nick change does not change the key.
func (i Identity) Key() string {
	if i.User != "" || i.Host != "" {
		return fmt.Sprintf("%s@%s", i.User, i.Host)
	}
	return i.Nick
}

// Same reports whether two identities resolve to the same key.
func (i Identity) Same(other Identity) bool {
	return i.Key() == other.Key()
}
