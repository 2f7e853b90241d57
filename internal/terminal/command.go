package terminal

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies a parsed input line.
type CommandKind int

const (
	CmdSearch CommandKind = iota
	CmdPrice
	CmdRating
	CmdBrand
	CmdClear
	CmdPage
	CmdNext
	CmdPrev
	CmdOpen
	CmdGo
	CmdBack
	CmdHelp
	CmdQuit
)

// Command is one line of user input. Lines that do not start with ':' are
// search input.
type Command struct {
	Kind CommandKind
	Arg  string
	Page int
}

// ParseCommand parses a line of input.
func ParseCommand(line string) (Command, error) {
	if !strings.HasPrefix(line, ":") {
		return Command{Kind: CmdSearch, Arg: strings.TrimSpace(line)}, nil
	}

	name, arg, _ := strings.Cut(strings.TrimSpace(line[1:]), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "price":
		return withArg(CmdPrice, name, arg)
	case "rating":
		return withArg(CmdRating, name, arg)
	case "brand":
		return withArg(CmdBrand, name, arg)
	case "open":
		return withArg(CmdOpen, name, arg)
	case "go":
		return withArg(CmdGo, name, arg)
	case "clear":
		return Command{Kind: CmdClear}, nil
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return Command{}, fmt.Errorf("usage: :page <number>")
		}
		return Command{Kind: CmdPage, Page: n}, nil
	case "next", "n":
		return Command{Kind: CmdNext}, nil
	case "prev", "p":
		return Command{Kind: CmdPrev}, nil
	case "back", "b":
		return Command{Kind: CmdBack}, nil
	case "help", "h", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	default:
		return Command{}, fmt.Errorf("unknown command :%s (try :help)", name)
	}
}

func withArg(kind CommandKind, name, arg string) (Command, error) {
	if arg == "" {
		return Command{}, fmt.Errorf("usage: :%s <value>", name)
	}
	return Command{Kind: kind, Arg: arg}, nil
}

const helpText = `Type to search product titles. Commands:
  :price <under-300|300-700|over-700>   toggle a price filter
  :rating <4-plus|3-plus>               toggle a rating filter
  :brand <name>                         toggle a brand filter
  :clear                                clear search and filters
  :page <n>, :next, :prev               change page
  :open <id>                            show a product
  :go <path>                            open a path (/, /products/<id>)
  :back                                 go back
  :quit                                 exit
`
