package dispatch

// Kind is a closed set of session operations. The transport layer decodes
// whatever text it speaks into one of these before calling the dispatcher;
// the session never sees command strings.
type Kind string

const (
	CmdStart   Kind = "start"
	CmdStop    Kind = "stop"
	CmdPause   Kind = "pause"
	CmdResume  Kind = "resume"
	CmdJoin    Kind = "join"
	CmdQuit    Kind = "quit"
	CmdPlay    Kind = "play"
	CmdDiscard Kind = "discard"
	CmdPick    Kind = "pick"
	CmdPlayers Kind = "players"
	CmdPoints  Kind = "points"
	CmdStatus  Kind = "status"
)

// Command is one decoded player command
type Command struct {
	Kind Kind

	// Indices are the card or entry numbers for play, discard and pick
	Indices []int
}

// RosterEventKind identifies how a participant left or changed
type RosterEventKind string

const (
	RosterLeft    RosterEventKind = "left"
	RosterKicked  RosterEventKind = "kicked"
	RosterQuit    RosterEventKind = "quit"
	RosterRenamed RosterEventKind = "renamed"
)

// RosterEvent is a roster change delivered by the chat transport. Quit
// events carry no channel; they apply to every running session.
type RosterEvent struct {
	Kind    RosterEventKind
	Channel string
	Nick    string
	NewNick string // renamed only
}
