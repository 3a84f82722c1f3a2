package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"platina/internal/config"
	"platina/internal/discovery"
	"platina/internal/domain"
	"platina/internal/engine"
	"platina/internal/storage"
	"platina/internal/testers"
	"platina/internal/ui"
	"platina/internal/watch"
)

// loggerSource yields the logger once flags have been parsed
type loggerSource interface {
	Logger() *zap.Logger
}

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
	logs      loggerSource
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	logs loggerSource,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
		logs:      logs,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := rc.logs.Logger()

	files, err := rc.discover(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No golden files to run")
		return nil
	}

	db, err := testers.OpenDatabase(ctx, rc.config)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	factory, err := testers.New(rc.config.Tester, rc.config, db, logger)
	if err != nil {
		return err
	}

	runErr := rc.runFiles(ctx, files, factory)
	if !rc.config.Flags.Watch {
		return runErr
	}
	return rc.watch(ctx, files, factory)
}

// discover resolves the golden files to run: the arguments, or a scan of the
// golden path, filtered by name.
func (rc *RunCommand) discover(args []string) ([]domain.GoldenFile, error) {
	files, err := newScanner(rc.config).Resolve(rc.config.GetGoldenPath(), args)
	if err != nil {
		return nil, err
	}
	return rc.filter.FilterByName(files, rc.config.Flags.NameFilter), nil
}

// runFiles runs files one after the other, stores the results and prints the
// summary.
func (rc *RunCommand) runFiles(ctx context.Context, files []domain.GoldenFile, factory testers.Factory) error {
	logger := rc.logs.Logger()
	mode := engine.ModeCheck
	if rc.config.Flags.Update {
		mode = engine.ModeUpdate
	}

	start := time.Now()
	results := make([]*domain.FileResult, 0, len(files))
	for _, file := range files {
		opts := []engine.Option{engine.WithLogger(logger)}
		if ui.IsTerminal(os.Stderr) {
			opts = append(opts, engine.WithProgress(ui.NewProgressBar(file.FileName, os.Stderr)))
		}

		result, err := engine.NewTestFile(file.Path, opts...).Run(ctx, factory(file.Path), mode)
		results = append(results, result)
		rc.formatter.PrintFileResult(result)

		if ctx.Err() != nil {
			logger.Warn("run interrupted", zap.String("file", file.Path))
			break
		}
		if err != nil && rc.config.Flags.FailFast {
			break
		}
	}

	output, err := rc.storage.Save(results, mode.String(), time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}
	rc.formatter.PrintSummary(output)

	if output.Meta.FailedFiles == 0 && output.Meta.ErroredFiles == 0 {
		return nil
	}
	if rc.config.Flags.OpenViewer && len(output.Details) > 0 && !rc.config.Flags.Watch {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return ErrRunFailed
}

// watch re-runs changed golden files until ctx is cancelled
func (rc *RunCommand) watch(ctx context.Context, files []domain.GoldenFile, factory testers.Factory) error {
	w, err := watch.New(rc.config.Extension, watch.DefaultDebounce, rc.logs.Logger())
	if err != nil {
		return err
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	if err := w.Add(paths...); err != nil {
		return err
	}

	color.Cyan("\nWatching %d golden file(s) for changes, press Ctrl+C to stop", len(files))
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		root := rc.config.GetGoldenPath()
		var toRun []domain.GoldenFile
		for _, p := range changed {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			toRun = append(toRun, domain.NewGoldenFile(root, p))
		}
		toRun = rc.filter.FilterByName(toRun, rc.config.Flags.NameFilter)
		if len(toRun) == 0 {
			return
		}
		ui.Clear()
		// failures were printed, keep watching
		_ = rc.runFiles(ctx, toRun, factory)
	})
}
