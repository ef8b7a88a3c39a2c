package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
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
	Today(ctx context.Context) error
	Schedules(ctx context.Context) error
	AddSchedule(ctx context.Context) error
	Done(ctx context.Context, arg string) error
	EditSchedule(ctx context.Context, arg string) error
	DelSchedule(ctx context.Context, arg string) error
	Notes(ctx context.Context) error
	AddNote(ctx context.Context) error
	DelNote(ctx context.Context, arg string) error
	SearchNotes(ctx context.Context, term string) error
	Calendar(ctx context.Context, arg string) error
	Day(ctx context.Context, arg string) error
	Stats(ctx context.Context) error
	Profile(ctx context.Context, arg string) error
	Password(ctx context.Context) error
	Export(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Arvo CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                 — show available commands
//	  - register             — create an account
//	  - login                — authenticate
//	  - exit | quit          — leave the program
//
//	Logged in:
//	  - today                — today's agenda
//	  - schedules            — all schedules
//	  - addschedule          — add a schedule (interactive)
//	  - done <n>             — mark schedule n completed
//	  - editschedule <n>     — edit schedule n (interactive)
//	  - delschedule <n>      — delete schedule n
//	  - notes                — list notes, newest first
//	  - addnote              — add a note (interactive)
//	  - delnote <n>          — delete note n
//	  - searchnotes <term>   — search notes
//	  - calendar [yyyy-mm]   — month view
//	  - day <yyyy-mm-dd>     — one day's schedules
//	  - stats                — completion statistics
//	  - profile [edit]       — show or edit the profile
//	  - password             — change password
//	  - export               — write all data to a JSON file
//	  - deleteaccount        — delete the account and all its data
//	  - logout, exit | quit
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("arvo %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: today, schedules, addschedule, done <n>, editschedule <n>, delschedule <n>,")
				printlnFn("  notes, addnote, delnote <n>, searchnotes <term>, calendar [yyyy-mm], day <yyyy-mm-dd>,")
				printlnFn("  stats, profile [edit], password, export, deleteaccount, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "today":
			_ = a.Today(ctx)

		case "schedules":
			_ = a.Schedules(ctx)

		case "addschedule":
			_ = a.AddSchedule(ctx)

		case "done":
			if arg == "" {
				printlnFn("Usage: done <n>")
				continue
			}
			_ = a.Done(ctx, arg)

		case "editschedule":
			if arg == "" {
				printlnFn("Usage: editschedule <n>")
				continue
			}
			_ = a.EditSchedule(ctx, arg)

		case "delschedule":
			if arg == "" {
				printlnFn("Usage: delschedule <n>")
				continue
			}
			_ = a.DelSchedule(ctx, arg)

		case "notes":
			_ = a.Notes(ctx)

		case "addnote":
			_ = a.AddNote(ctx)

		case "delnote":
			if arg == "" {
				printlnFn("Usage: delnote <n>")
				continue
			}
			_ = a.DelNote(ctx, arg)

		case "searchnotes":
			if len(args) == 0 {
				printlnFn("Usage: searchnotes <term>")
				continue
			}
			_ = a.SearchNotes(ctx, strings.Join(args, " "))

		case "calendar":
			_ = a.Calendar(ctx, arg)

		case "day":
			if arg == "" {
				printlnFn("Usage: day <yyyy-mm-dd>")
				continue
			}
			_ = a.Day(ctx, arg)

		case "stats":
			_ = a.Stats(ctx)

		case "profile":
			_ = a.Profile(ctx, arg)

		case "password":
			_ = a.Password(ctx)

		case "export":
			_ = a.Export(ctx)

		case "deleteaccount":
			_ = a.DeleteAccount(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
