package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/daydrill/internal/domain"
)

var errUsage = errors.New("usage")

// commandTable maps every verb to one drill operation.
func (r *REPL) commandTable() map[string]command {
	enter := command{usage: "enter [answer]", help: "grade the answer, or advance when revealed", run: r.cmdEnter}
	quit := command{usage: "quit", help: "leave", run: func(context.Context, []string) error { return errQuit }}

	return map[string]command{
		"help":   {usage: "help", help: "list commands", run: func(context.Context, []string) error { r.printHelp(); return nil }},
		"load":   {usage: "load <file>", help: "load a word list (xlsx or csv)", run: r.cmdLoad},
		"days":   {usage: "days", help: "list days with word counts", run: r.cmdDays},
		"toggle": {usage: "toggle <day> [day...]", help: "select or deselect days", run: r.cmdToggle},
		"all":    {usage: "all", help: "select every day", run: r.cmdAll},
		"none":   {usage: "none", help: "clear the day selection", run: r.cmdNone},
		"start":  {usage: "start", help: "start a round from the selected days", run: r.cmdStart},
		"enter":  enter,
		"submit": {usage: "submit <answer>", help: "grade without advancing", run: r.cmdSubmit},
		"next":   {usage: "next", help: "go to the next question", run: r.cmdNext},
		"show":   {usage: "show", help: "show the current question", run: r.cmdShow},
		"mode":   {usage: "mode <w2m|m2w>", help: "switch quiz direction", run: r.cmdMode},
		"retry":  {usage: "retry", help: "retry the questions missed this round", run: r.cmdRetry},
		"reset":  {usage: "reset", help: "reshuffle and restart the last round", run: r.cmdReset},
		"bank":   {usage: "bank", help: "list the wrong-answer bank", run: r.cmdBank},
		"export": {usage: "export [xlsx|csv]", help: "write the bank to a file", run: r.cmdExport},
		"import": {usage: "import <file> [--start]", help: "merge an exam sheet into the bank", run: r.cmdImport},
		"remove": {usage: "remove <id>", help: "delete one bank entry", run: r.cmdRemove},
		"clear":  {usage: "clear --yes", help: "empty the bank", run: r.cmdClear},
		"replay": {usage: "replay", help: "start a round from the whole bank", run: r.cmdReplay},
		"quit":   quit,
		"exit":   {usage: "exit", run: quit.run},
	}
}

func joined(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func (r *REPL) cmdLoad(ctx context.Context, args []string) error {
	path := joined(args)
	if path == "" {
		return fmt.Errorf("%w: load <file>", errUsage)
	}
	ticket := r.svc.BeginLoad()
	data, err := r.readFile(path)
	if err != nil {
		return err
	}
	report, err := r.svc.LoadCatalog(ctx, ticket, filepath.Base(path), data)
	if err != nil {
		return err
	}
	r.printf("loaded %d words in %d days (%d rows dropped)\n", report.Kept, report.Days, report.Dropped)
	return r.cmdDays(ctx, nil)
}

func (r *REPL) cmdDays(context.Context, []string) error {
	r.printDays(r.svc.State())
	return nil
}

func (r *REPL) cmdToggle(ctx context.Context, args []string) error {
	days := strings.Fields(joined(args))
	if len(days) == 0 {
		return fmt.Errorf("%w: toggle <day> [day...]", errUsage)
	}
	for _, d := range days {
		if _, err := r.svc.ToggleDay(d); err != nil {
			return err
		}
	}
	return r.cmdDays(ctx, nil)
}

func (r *REPL) cmdAll(ctx context.Context, _ []string) error {
	r.svc.SelectAll()
	return r.cmdDays(ctx, nil)
}

func (r *REPL) cmdNone(ctx context.Context, _ []string) error {
	r.svc.ClearSelection()
	return r.cmdDays(ctx, nil)
}

func (r *REPL) cmdStart(ctx context.Context, _ []string) error {
	view, err := r.svc.StartSession(ctx)
	if err != nil {
		return err
	}
	r.printView(view)
	return nil
}

func (r *REPL) cmdEnter(ctx context.Context, args []string) error {
	before := r.svc.Session()
	res, err := r.svc.Enter(ctx, parseAnswer(before, joined(args)))
	if err != nil {
		return err
	}
	if res.Graded {
		r.printGrade(*res.Entry, r.svc.Session())
		return nil
	}
	r.printView(r.svc.Session())
	return nil
}

func (r *REPL) cmdSubmit(ctx context.Context, args []string) error {
	entry, err := r.svc.Submit(ctx, parseAnswer(r.svc.Session(), joined(args)))
	if err != nil {
		return err
	}
	r.printGrade(entry, r.svc.Session())
	return nil
}

func (r *REPL) cmdNext(context.Context, []string) error {
	if err := r.svc.Advance(); err != nil {
		return err
	}
	r.printView(r.svc.Session())
	return nil
}

func (r *REPL) cmdShow(context.Context, []string) error {
	r.printView(r.svc.Session())
	return nil
}

func (r *REPL) cmdMode(_ context.Context, args []string) error {
	mode, err := domain.ParseMode(joined(args))
	if err != nil {
		return err
	}
	if err := r.svc.SetMode(mode); err != nil {
		return err
	}
	r.printf("mode: %s\n", mode)
	r.printView(r.svc.Session())
	return nil
}

func (r *REPL) cmdRetry(context.Context, []string) error {
	view, err := r.svc.RetryWrong()
	if err != nil {
		return err
	}
	r.printView(view)
	return nil
}

func (r *REPL) cmdReset(context.Context, []string) error {
	view, err := r.svc.ResetRound()
	if err != nil {
		return err
	}
	r.printView(view)
	return nil
}

func (r *REPL) cmdBank(context.Context, []string) error {
	r.printBank(r.svc.BankEntries())
	return nil
}

func (r *REPL) cmdExport(ctx context.Context, args []string) error {
	format := r.opts.ExportFormat
	if raw := joined(args); raw != "" {
		f, err := domain.ParseExportFormat(raw)
		if err != nil {
			return err
		}
		format = f
	}
	file, err := r.svc.ExportBank(ctx, format)
	if err != nil {
		return err
	}
	path := filepath.Join(r.opts.ExportDir, file.Name)
	if err := r.writeFile(path, file.Data); err != nil {
		return err
	}
	r.printf("exported %s\n", path)
	return nil
}

func (r *REPL) cmdImport(ctx context.Context, args []string) error {
	path, start := joined(args), false
	if p, ok := strings.CutSuffix(path, "--start"); ok {
		path, start = strings.TrimSpace(p), true
	}
	if path == "" {
		return fmt.Errorf("%w: import <file> [--start]", errUsage)
	}
	data, err := r.readFile(path)
	if err != nil {
		return err
	}
	res, err := r.svc.ImportBank(ctx, filepath.Base(path), data, start)
	if err != nil {
		return err
	}
	r.printf("imported %d new, merged %d, skipped %d\n", res.Report.Imported, res.Report.Merged, res.Report.Skipped)
	if res.Session != nil {
		r.printView(*res.Session)
	}
	return nil
}

func (r *REPL) cmdRemove(ctx context.Context, args []string) error {
	id := joined(args)
	if id == "" {
		return fmt.Errorf("%w: remove <id>", errUsage)
	}
	if err := r.svc.RemoveEntry(ctx, id); err != nil {
		return err
	}
	r.printf("removed %s\n", id)
	return nil
}

func (r *REPL) cmdClear(ctx context.Context, args []string) error {
	confirmed := joined(args) == "--yes"
	if err := r.svc.ClearBank(ctx, confirmed); err != nil {
		return err
	}
	r.printf("bank cleared\n")
	return nil
}

func (r *REPL) cmdReplay(ctx context.Context, _ []string) error {
	view, err := r.svc.ReplayBank(ctx)
	if err != nil {
		return err
	}
	r.printView(view)
	return nil
}
