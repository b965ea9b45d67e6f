// Package messaging defines the outbound message sink the session talks
// through. The chat transport behind it (IRC, console, tests) is not the
// session's concern.
package messaging

import (
	"fmt"
	"io"
	"os"
)

// Sink receives all player-visible output from a session.
type Sink interface {
	// Announce sends a message to the channel.
	Announce(channel, format string, args ...any)

	// Private sends a message to a single participant by nick.
	Private(nick, format string, args ...any)

	// SetTopic sets the channel topic.
	SetTopic(channel, topic string)
}

// Console writes channel and private traffic to a writer, for local play.
type Console struct {
	Out io.Writer
}

// NewConsole creates a Console sink writing to stdout.
func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

// Ensure Console implements Sink
var _ Sink = (*Console)(nil)

// Announce writes a channel message
func (c *Console) Announce(channel, format string, args ...any) {
	fmt.Fprintf(c.Out, "[%s] %s\n", channel, fmt.Sprintf(format, args...))
}

// Private writes a private message
func (c *Console) Private(nick, format string, args ...any) {
	fmt.Fprintf(c.Out, "[pm -> %s] %s\n", nick, fmt.Sprintf(format, args...))
}

// SetTopic writes the topic change
func (c *Console) SetTopic(channel, topic string) {
	fmt.Fprintf(c.Out, "[%s] topic: %s\n", channel, topic)
}
