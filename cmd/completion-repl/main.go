// completion-repl is an interactive client for the completion engine's wire
// protocol.
//
// Usage:
//
//	completion-repl <host:port>
//
// Commands:
//
//	prefix <p>                     Prefix search
//	substring <s>                  Substring search
//	fuzzy <q>                      Fuzzy subsequence search
//	similar <w> [cutoff]           Similarity search
//	best <q> [limit]                Ranked best-completions
//	insert <words...>              Insert one or more comma/space/newline separated words
//	data-file                      Print the server's configured data file path
//	help                           Show this help
//	exit / quit / q                Exit
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/shockdb/stringspace/internal/replclient"
	"github.com/shockdb/stringspace/internal/similarity"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: completion-repl <host:port>")
		os.Exit(1)
	}

	client, err := replclient.Dial(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close() //nolint:errcheck

	r := &repl{client: client, addr: os.Args[1]}

	if err := r.run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type repl struct {
	client *replclient.Client
	addr   string
	liner  *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".completion_repl_history")
}

func (r *repl) run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close() //nolint:errcheck

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("completion-repl connected to %s\n", r.addr)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("completion> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "prefix":
			r.dispatch("prefix", args)

		case "substring":
			r.dispatch("substring", args)

		case "fuzzy":
			r.dispatch("fuzzy-subsequence", args)

		case "similar":
			if len(args) == 1 {
				args = append(args, strconv.FormatFloat(similarity.DefaultSimilarCutoff, 'f', -1, 64))
			}

			r.dispatch("similar", args)

		case "best":
			r.dispatch("best-completions", args)

		case "insert":
			r.dispatch("insert", []string{strings.Join(args, " ")})

		case "data-file":
			r.dispatch("data-file", nil)

		case "clear", "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *repl) dispatch(op string, operands []string) {
	resp, err := r.client.Do(op, operands...)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Println(resp)
}

func (r *repl) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			_, _ = r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *repl) completer(line string) []string {
	commands := []string{
		"prefix", "substring", "fuzzy", "similar", "best",
		"insert", "data-file", "clear", "cls", "help",
		"exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *repl) printHelp() {
	fmt.Println(`Commands:
  prefix <p>             Prefix search
  substring <s>          Substring search
  fuzzy <q>              Fuzzy subsequence search
  similar <w> [cutoff]   Similarity search
  best <q> [limit]       Ranked best-completions
  insert <words...>      Insert one or more comma/space/newline separated words
  data-file              Print the server's configured data file path
  clear / cls            Clear the screen
  help                   Show this help
  exit / quit / q        Exit`)
}
