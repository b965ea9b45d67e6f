package redis

import "fmt"

// Key prefix for all session-related data
const keyPrefix = "cardgame"

// scoresKey returns the Redis key for a channel's score ledger hash
func scoresKey(channel string) string {
	return fmt.Sprintf("%s:scores:%s", keyPrefix, channel)
}

// idleBansKey returns the Redis key for a channel's idle-ban counter hash
func idleBansKey(channel string) string {
	return fmt.Sprintf("%s:idlebans:%s", keyPrefix, channel)
}
