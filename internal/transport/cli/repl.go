// Package cli hosts the drill in a line-oriented terminal session. Each input
// line is one verb followed by its arguments; an empty line is "enter".
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/heartmarshall/daydrill/internal/catalog"
	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/service/drill"
	"github.com/heartmarshall/daydrill/internal/service/quiz"
	"github.com/heartmarshall/daydrill/internal/service/wrongbank"
)

type drillService interface {
	State() drill.State
	BeginLoad() drill.Ticket
	LoadCatalog(ctx context.Context, ticket drill.Ticket, name string, data []byte) (catalog.Report, error)
	ToggleDay(day string) (bool, error)
	SelectAll()
	ClearSelection()

	Session() quiz.View
	StartSession(ctx context.Context) (quiz.View, error)
	Submit(ctx context.Context, d domain.Draft) (domain.HistoryEntry, error)
	Advance() error
	Enter(ctx context.Context, d domain.Draft) (drill.EnterResult, error)
	SetMode(m domain.Mode) error
	RetryWrong() (quiz.View, error)
	ResetRound() (quiz.View, error)

	BankEntries() []domain.BankEntry
	ExportBank(ctx context.Context, format domain.ExportFormat) (wrongbank.ExportFile, error)
	ImportBank(ctx context.Context, name string, data []byte, start bool) (drill.ImportResult, error)
	ReplayBank(ctx context.Context) (quiz.View, error)
	RemoveEntry(ctx context.Context, id string) error
	ClearBank(ctx context.Context, confirmed bool) error
}

// Options configure a REPL.
type Options struct {
	// ExportDir receives exported bank files. Defaults to the working directory.
	ExportDir string
	// ExportFormat is used when "export" is given no format.
	ExportFormat domain.ExportFormat
}

// REPL reads commands from in and writes results to out.
type REPL struct {
	svc  drillService
	log  *slog.Logger
	in   io.Reader
	out  io.Writer
	opts Options

	readFile  func(name string) ([]byte, error)
	writeFile func(name string, data []byte) error

	commands map[string]command
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// errQuit ends the loop without error.
var errQuit = errors.New("quit")

// New creates a REPL over svc.
func New(svc drillService, log *slog.Logger, in io.Reader, out io.Writer, opts Options) *REPL {
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = domain.FormatXLSX
	}
	r := &REPL{
		svc:       svc,
		log:       log.With("host", "cli"),
		in:        in,
		out:       out,
		opts:      opts,
		readFile:  os.ReadFile,
		writeFile: func(name string, data []byte) error { return os.WriteFile(name, data, 0o644) },
	}
	r.commands = r.commandTable()
	return r
}

// Run processes lines until EOF, "quit" or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	r.printf("daydrill ready. type \"help\" for commands.\n")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		r.printf("> ")
		if !scanner.Scan() {
			r.printf("\n")
			return scanner.Err()
		}
		if err := r.Exec(ctx, scanner.Text()); errors.Is(err, errQuit) {
			return nil
		}
	}
}

// Exec runs a single input line. Command failures are printed as notices and
// only errQuit is returned.
func (r *REPL) Exec(ctx context.Context, line string) error {
	verb, rest := splitVerb(line)
	if verb == "" {
		verb = "enter"
	}

	cmd, ok := r.commands[verb]
	if !ok {
		r.printf("unknown command %q. type \"help\".\n", verb)
		return nil
	}

	var args []string
	if rest != "" {
		args = []string{rest}
	}
	err := cmd.run(ctx, args)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errQuit):
		return errQuit
	default:
		r.log.DebugContext(ctx, "command failed", slog.String("verb", verb), slog.String("error", err.Error()))
		r.printf("! %s\n", notice(err))
		return nil
	}
}

func (r *REPL) printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

func (r *REPL) printHelp() {
	verbs := make([]string, 0, len(r.commands))
	for v := range r.commands {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	for _, v := range verbs {
		c := r.commands[v]
		if c.help == "" {
			continue
		}
		r.printf("  %-28s %s\n", c.usage, c.help)
	}
}

// splitVerb separates the lower-cased first word from the untouched remainder.
func splitVerb(line string) (string, string) {
	line = strings.TrimSpace(line)
	verb, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(verb), strings.TrimSpace(rest)
}
