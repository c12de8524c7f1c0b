package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/tripcart/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Forget(ctx context.Context) error

	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error

	ShowSettings(ctx context.Context) error
	SetSetting(ctx context.Context, field, value string) error
	ResetSettings(ctx context.Context) error

	ListGroups(ctx context.Context, filter string) error
	CreateGroup(ctx context.Context) error
	DeleteGroup(ctx context.Context, groupID string) error
	SearchGroups(ctx context.Context, query string) error
	JoinGroup(ctx context.Context, groupID string) error
	LeaveGroup(ctx context.Context, groupID string) error
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	SearchUsers(ctx context.Context, username string) error

	Inbox(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
}

const (
	guestHelp  = "Available commands: register, login, settings, set, reset-settings, stats, forget, help, exit"
	memberHelp = "Available commands: whoami, profile, profile-edit, settings, set <field> <value>, reset-settings,\n" +
		"  groups [filter], group-create, group-delete <id>, group-search <query>, group-join <id>, group-leave <id>,\n" +
		"  member-add <group> <user>, member-remove <group> <user>, user-search <username>,\n" +
		"  inbox [read|approve|decline|dismiss <id>], stats, forget, delete-account, logout, exit"
)

// commands that need a signed-in session.
var memberOnly = map[string]bool{
	"whoami": true, "profile": true, "profile-edit": true, "logout": true, "delete-account": true,
	"groups": true, "group-create": true, "group-delete": true, "group-search": true,
	"group-join": true, "group-leave": true, "member-add": true, "member-remove": true,
	"user-search": true, "inbox": true,
}

// runREPL starts a simple read–eval–print loop for the tripcart CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands read any further input from the same
// reader. The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tripcart (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if memberOnly[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", services.ErrorMessage(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	usage := func(u string) error {
		printlnFn("Usage:", u)
		return nil
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(memberHelp)
		} else {
			printlnFn(guestHelp)
		}
		return nil

	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "delete-account":
		return a.DeleteAccount(ctx)
	case "forget":
		return a.Forget(ctx)

	case "profile":
		return a.ShowProfile(ctx)
	case "profile-edit":
		return a.EditProfile(ctx)

	case "settings":
		return a.ShowSettings(ctx)
	case "set":
		if len(args) != 2 {
			return usage("set <language|theme|font> <value>")
		}
		return a.SetSetting(ctx, args[0], args[1])
	case "reset-settings":
		return a.ResetSettings(ctx)

	case "groups":
		return a.ListGroups(ctx, strings.Join(args, " "))
	case "group-create":
		return a.CreateGroup(ctx)
	case "group-delete":
		if len(args) != 1 {
			return usage("group-delete <id>")
		}
		return a.DeleteGroup(ctx, args[0])
	case "group-search":
		if len(args) == 0 {
			return usage("group-search <query>")
		}
		return a.SearchGroups(ctx, strings.Join(args, " "))
	case "group-join":
		if len(args) != 1 {
			return usage("group-join <id>")
		}
		return a.JoinGroup(ctx, args[0])
	case "group-leave":
		if len(args) != 1 {
			return usage("group-leave <id>")
		}
		return a.LeaveGroup(ctx, args[0])
	case "member-add":
		if len(args) != 2 {
			return usage("member-add <group> <user>")
		}
		return a.AddMember(ctx, args[0], args[1])
	case "member-remove":
		if len(args) != 2 {
			return usage("member-remove <group> <user>")
		}
		return a.RemoveMember(ctx, args[0], args[1])
	case "user-search":
		if len(args) != 1 {
			return usage("user-search <username>")
		}
		return a.SearchUsers(ctx, args[0])

	case "inbox":
		return a.Inbox(ctx, args)
	case "stats":
		return a.Stats(ctx)

	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
