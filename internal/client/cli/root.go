package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if a.userEmail != "" {
		return fmt.Sprintf("(%s)", a.userEmail)
	}
	return ""
}

// Root runs the read-eval-print loop until EOF or an exit command. Command
// handlers return errors; the loop prints them and keeps going.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Lockbox CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "lockbox %s> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(a.out, "Bye!")
			return
		}

		if err := a.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.help()
		return nil
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	}

	if !a.isLoggedIn() {
		return fmt.Errorf("not logged in; use 'login' or 'register'")
	}

	switch cmd {
	case "list":
		return a.list(ctx, "")
	case "search":
		if len(args) == 0 {
			return fmt.Errorf("usage: search <keyword>")
		}
		return a.list(ctx, strings.Join(args, " "))
	case "add":
		return a.add(ctx)
	case "delete":
		return a.delete(ctx, firstArg(args))
	case "groups":
		return a.groups(ctx)
	case "export":
		return a.export(ctx, firstArg(args))
	case "import":
		return a.importFile(ctx, firstArg(args))
	case "logout":
		return a.logout(ctx)
	}

	return fmt.Errorf("unknown command %q, type 'help'", cmd)
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: list, search <kw>, add, delete [id], groups, export [link], import [path], logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, exit")
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
