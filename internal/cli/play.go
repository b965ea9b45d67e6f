package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/cardgame-go/internal/api"
	"github.com/mcoot/cardgame-go/internal/factory"
	"github.com/mcoot/cardgame-go/internal/model"
	"github.com/mcoot/cardgame-go/internal/services/dispatch"
)

const playChannel = "#console"

func newPlayCmd() *cobra.Command {
	var apiPort int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run a local console game session",
		Long: `play runs a game against the real session engine with stdin as the
chat transport. Each input line is "<nick> <command>", e.g.:

  alice !start
  bob !join
  bob !play 2
  alice !pick 0

Roster events can be simulated with "<nick> /part" and
"<nick> /rename <newnick>".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(factory.Config{})
			if err != nil {
				return err
			}

			if apiPort > 0 {
				serverCfg := api.DefaultServerConfig()
				serverCfg.Port = apiPort
				router := api.NewRouter(api.RouterConfig{
					Logger:     buildLogger(),
					Dispatcher: app.Dispatcher,
				})
				server := api.NewServer(router, serverCfg, buildLogger())
				go func() { _ = server.Start() }()
				defer func() { _ = server.Shutdown(context.Background()) }()
			}

			runConsole(cmd, app.Dispatcher)
			return nil
		},
	}

	cmd.Flags().IntVar(&apiPort, "api-port", 0, "Serve the status API on this port (0 disables)")
	return cmd
}

func runConsole(cmd *cobra.Command, dispatcher *dispatch.Dispatcher) {
	ctx := context.Background()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(cmd.OutOrStdout(), "Console session in", playChannel, "- lines are \"<nick> <command>\", ctrl-d to exit")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		nick, rest, ok := strings.Cut(line, " ")
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "expected: <nick> <command>")
			continue
		}
		actor := model.Identity{Nick: nick, User: nick, Host: "console"}

		if ev, ok := parseRosterEvent(nick, rest); ok {
			dispatcher.HandleRoster(ctx, ev)
			continue
		}
		command, err := ParseCommand(rest)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), err.Error())
			continue
		}
		// Rejections are messaged through the sink already
		_ = dispatcher.Dispatch(ctx, playChannel, actor, command)
	}
}

func parseRosterEvent(nick, text string) (dispatch.RosterEvent, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return dispatch.RosterEvent{}, false
	}
	switch fields[0] {
	case "/part":
		return dispatch.RosterEvent{Kind: dispatch.RosterLeft, Channel: playChannel, Nick: nick}, true
	case "/quit":
		return dispatch.RosterEvent{Kind: dispatch.RosterQuit, Nick: nick}, true
	case "/rename":
		if len(fields) != 2 {
			return dispatch.RosterEvent{}, false
		}
		return dispatch.RosterEvent{Kind: dispatch.RosterRenamed, Channel: playChannel, Nick: nick, NewNick: fields[1]}, true
	}
	return dispatch.RosterEvent{}, false
}

// ParseCommand decodes a "!command args" line into a dispatch command
func ParseCommand(text string) (dispatch.Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "!") {
		return dispatch.Command{}, fmt.Errorf("commands start with !, e.g. !join")
	}

	name := strings.TrimPrefix(fields[0], "!")
	indices, err := parseIndices(fields[1:])
	if err != nil {
		return dispatch.Command{}, err
	}

	switch name {
	case "start":
		return dispatch.Command{Kind: dispatch.CmdStart}, nil
	case "stop":
		return dispatch.Command{Kind: dispatch.CmdStop}, nil
	case "pause":
		return dispatch.Command{Kind: dispatch.CmdPause}, nil
	case "resume":
		return dispatch.Command{Kind: dispatch.CmdResume}, nil
	case "join":
		return dispatch.Command{Kind: dispatch.CmdJoin}, nil
	case "quit":
		return dispatch.Command{Kind: dispatch.CmdQuit}, nil
	case "play":
		return dispatch.Command{Kind: dispatch.CmdPlay, Indices: indices}, nil
	case "discard":
		return dispatch.Command{Kind: dispatch.CmdDiscard, Indices: indices}, nil
	case "pick":
		return dispatch.Command{Kind: dispatch.CmdPick, Indices: indices}, nil
	case "players":
		return dispatch.Command{Kind: dispatch.CmdPlayers}, nil
	case "points":
		return dispatch.Command{Kind: dispatch.CmdPoints}, nil
	case "status":
		return dispatch.Command{Kind: dispatch.CmdStatus}, nil
	default:
		return dispatch.Command{}, fmt.Errorf("unknown command !%s", name)
	}
}

func parseIndices(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, nil
	}
	indices := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%q is not a card number", arg)
		}
		indices[i] = n
	}
	return indices, nil
}
