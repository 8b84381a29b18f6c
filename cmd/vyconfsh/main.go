// vyconfsh is an interactive shell for editing a configuration file.
//
// It provides a two-mode CLI: an operational mode for viewing the active
// configuration, and a configure mode for editing a candidate copy with
// commit and rollback support.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/psaab/vyconf/pkg/audit"
	"github.com/psaab/vyconf/pkg/cmdtree"
	"github.com/psaab/vyconf/pkg/configstore"
	"github.com/psaab/vyconf/pkg/logging"
)

func main() {
	configPath := flag.String("config", "config.boot", "configuration file to edit")
	historyFile := flag.String("history", "/tmp/vyconfsh_history", "readline history file")
	verbose := flag.Bool("verbose", false, "log every candidate mutation to stderr")
	auditLog := flag.String("audit-log", "", "append candidate mutations to this log file")
	flag.Parse()

	store := configstore.New(*configPath)
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		store.Observe(audit.Logger(logger))
	}
	if *auditLog != "" {
		w, err := logging.NewFileWriter(logging.FileConfig{Path: *auditLog})
		if err != nil {
			fmt.Fprintf(os.Stderr, "vyconfsh: %v\n", err)
			os.Exit(1)
		}
		defer w.Close()
		store.Observe(audit.Logger(slog.New(slog.NewTextHandler(w, nil))))
	}
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "vyconfsh: %v\n", err)
		os.Exit(1)
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "vyconf"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = "admin"
	}

	sh := &shell{
		store:    store,
		hostname: hostname,
		username: username,
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.operationalPrompt(),
		HistoryFile:     *historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &completer{sh: sh},
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "vyconfsh: readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()
	sh.rl = rl

	fmt.Printf("vyconfsh — editing %s\n", *configPath)
	fmt.Println("Type 'help' for available commands")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				// Ctrl-D leaves configure mode first, then the shell.
				if sh.store.InConfigMode() {
					sh.leaveConfigure()
					fmt.Println("\nExiting configuration mode")
					continue
				}
				break
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := sh.dispatch(line); err != nil {
			if err == errExit {
				break
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}

	if sh.store.InConfigMode() {
		sh.store.ExitConfigure()
	}
}

var errExit = fmt.Errorf("exit")

type shell struct {
	store    *configstore.Store
	rl       *readline.Instance
	hostname string
	username string
	editPath []string
}

func (s *shell) operationalPrompt() string {
	return fmt.Sprintf("%s@%s> ", s.username, s.hostname)
}

func (s *shell) configPrompt() string {
	return fmt.Sprintf("%s@%s# ", s.username, s.hostname)
}

func (s *shell) dispatch(line string) error {
	if s.store.InConfigMode() {
		return s.dispatchConfig(line)
	}
	return s.dispatchOperational(line)
}

func (s *shell) dispatchOperational(line string) error {
	parts := strings.Fields(line)

	switch parts[0] {
	case "configure":
		s.store.EnterConfigure()
		s.rl.SetPrompt(s.configPrompt())
		fmt.Println("Entering configuration mode")
		fmt.Println("[edit]")
		return nil

	case "show":
		if len(parts) >= 2 && parts[1] == "commands" {
			fmt.Print(s.store.Active().ToCommands("set"))
			return nil
		}
		fmt.Print(s.store.ShowActive())
		return nil

	case "quit", "exit":
		return errExit

	case "help", "?":
		cmdtree.WriteHelp(os.Stdout, cmdtree.HelpCandidates(cmdtree.OperationalTree))
		return nil

	default:
		return fmt.Errorf("unknown command: %s", parts[0])
	}
}

func (s *shell) dispatchConfig(line string) error {
	parts := strings.Fields(line)

	switch parts[0] {
	case "edit":
		if len(parts) < 2 {
			fmt.Println("edit: missing path")
			return nil
		}
		s.editPath = append(s.editPath, parts[1:]...)
		s.printEditLevel()
		return nil

	case "top":
		s.editPath = nil
		s.printEditLevel()
		return nil

	case "up":
		if len(s.editPath) > 0 {
			s.editPath = s.editPath[:len(s.editPath)-1]
		}
		s.printEditLevel()
		return nil

	case "set":
		if len(parts) < 2 {
			return fmt.Errorf("set: missing path")
		}
		return s.handleSet(s.fullPath(parts[1:]))

	case "delete":
		if len(parts) < 2 {
			return fmt.Errorf("delete: missing path")
		}
		return s.handleDelete(s.fullPath(parts[1:]))

	case "show":
		if len(parts) >= 2 && parts[1] == "commands" {
			fmt.Print(s.store.ShowCandidateCommands())
			return nil
		}
		fmt.Print(s.store.ShowCandidate())
		return nil

	case "compare":
		diff, err := s.store.ShowCompare()
		if err != nil {
			return err
		}
		fmt.Print(diff)
		return nil

	case "commit":
		comment := strings.Join(parts[1:], " ")
		if err := s.store.Commit(comment); err != nil {
			return err
		}
		fmt.Println("commit complete")
		return nil

	case "rollback":
		n := 0
		if len(parts) >= 2 {
			v, err := strconv.Atoi(parts[1])
			if err != nil {
				return fmt.Errorf("rollback: bad argument %q", parts[1])
			}
			n = v
		}
		if err := s.store.Rollback(n); err != nil {
			return err
		}
		fmt.Println("configuration rolled back")
		return nil

	case "discard":
		if err := s.store.Rollback(0); err != nil {
			return err
		}
		fmt.Println("changes discarded")
		return nil

	case "run":
		if len(parts) < 2 {
			return fmt.Errorf("run: missing command")
		}
		return s.dispatchOperational(strings.Join(parts[1:], " "))

	case "exit", "quit":
		if s.store.IsDirty() {
			fmt.Println("warning: uncommitted changes discarded")
		}
		s.leaveConfigure()
		fmt.Println("Exiting configuration mode")
		return nil

	case "help", "?":
		cmdtree.WriteHelp(os.Stdout, cmdtree.HelpCandidates(cmdtree.ConfigTree))
		return nil

	default:
		return fmt.Errorf("unknown command: %s (in configuration mode)", parts[0])
	}
}

func (s *shell) fullPath(words []string) []string {
	return append(append([]string{}, s.editPath...), words...)
}

// handleSet stores the final word as the value when two or more words are
// given; a single word creates a valueless node. There is no schema to
// decide, so the value-last rule is the convention.
func (s *shell) handleSet(words []string) error {
	if len(words) == 1 {
		return s.store.SetValueless(words)
	}
	return s.store.Set(words[:len(words)-1], words[len(words)-1], true)
}

// handleDelete removes the node at the path. When the path's final word
// is not a node but matches a value of its parent, that single value is
// removed instead.
func (s *shell) handleDelete(words []string) error {
	candidate := s.store.Candidate()
	if candidate != nil && !candidate.Exists(words) && len(words) >= 2 {
		parent := words[:len(words)-1]
		if values, err := candidate.ReturnValues(parent); err == nil {
			for _, v := range values {
				if v == words[len(words)-1] {
					return s.store.DeleteValue(parent, v)
				}
			}
		}
	}
	return s.store.Delete(words)
}

func (s *shell) leaveConfigure() {
	s.store.ExitConfigure()
	s.editPath = nil
	s.rl.SetPrompt(s.operationalPrompt())
}

// completeConfigPath lists node names under the edit level for tab
// completion of configuration paths.
func (s *shell) completeConfigPath(path []string) []string {
	candidate := s.store.Candidate()
	if candidate == nil {
		return nil
	}
	names, err := candidate.ListNodes(s.fullPath(path))
	if err != nil {
		return nil
	}
	return names
}

// completer implements readline.AutoCompleter over the command trees.
type completer struct {
	sh *shell
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	words := strings.Fields(text)
	trailingSpace := len(text) > 0 && text[len(text)-1] == ' '
	var partial string
	if !trailingSpace && len(words) > 0 {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	tree := cmdtree.OperationalTree
	var pathFn cmdtree.PathFunc
	if c.sh.store.InConfigMode() {
		tree = cmdtree.ConfigTree
		pathFn = c.sh.completeConfigPath
	}

	candidates := cmdtree.Complete(tree, words, partial, pathFn)
	if len(candidates) == 0 {
		return nil, 0
	}

	names := cmdtree.Names(candidates)
	sort.Strings(names)
	if len(names) == 1 {
		return [][]rune{[]rune(names[0][len(partial):] + " ")}, len(partial)
	}

	// Multiple matches: show descriptions above the prompt and extend
	// the line by the shared prefix.
	cmdtree.WriteHelp(c.sh.rl.Stdout(), candidates)
	suffix := cmdtree.CommonPrefix(names)[len(partial):]
	if suffix == "" {
		return nil, 0
	}
	return [][]rune{[]rune(suffix)}, len(partial)
}

func (s *shell) printEditLevel() {
	s.rl.SetPrompt(s.configPrompt())
	if len(s.editPath) > 0 {
		fmt.Printf("[edit %s]\n", strings.Join(s.editPath, " "))
	} else {
		fmt.Println("[edit]")
	}
}
