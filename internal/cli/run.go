// run.go implements the root command's pipeline run.
//
// Orchestration steps:
//  1. Load configuration (defaults, optionally overridden by --config)
//  2. Build the source→destination mapping structure from the origin tree
//  3. Create the destination root and take the run lock
//  4. Copy each leaf's main/task files (concurrent batch)
//  5. Generate one mod.rs per top-level directory (concurrent batch)
//  6. Optionally generate the main.rs entrypoint (--main-file)
//
// Step 2 performs no mutation, so structural failures (unreadable
// origin) abort before the destination is touched at all. Dry-run mode
// stops mutation inside every later step and skips the lock.
package cli

import (
	"fmt"
	"os"

	"github.com/mmr-tortoise/rsorg/internal/config"
	"github.com/mmr-tortoise/rsorg/internal/copier"
	"github.com/mmr-tortoise/rsorg/internal/filelock"
	"github.com/mmr-tortoise/rsorg/internal/generator"
	"github.com/mmr-tortoise/rsorg/internal/logger"
	"github.com/mmr-tortoise/rsorg/internal/model"
	"github.com/mmr-tortoise/rsorg/internal/tree"
)

// runFlags holds the flag values for the pipeline run.
type runFlags struct {
	dryRun   bool // --dry-run: log actions without mutating the filesystem
	mainFile bool // --main-file: also write the main.rs entrypoint
	workers  int  // --workers: override the configured worker count
}

// runRun executes the full reorganization pipeline.
func runRun(flags *runFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	log := newRunLogger()

	// Step 1: build the correspondence structure. Read-only: nothing
	// below the destination root exists or changes yet.
	mapper := tree.NewMapper(cfg)
	structure, err := mapper.Collect(originDir, destinationDir)
	if err != nil {
		return err
	}

	projects, modules, submodules := structure.CountDirs()
	log.Debugf("mapped %d project(s), %d module(s), %d submodule(s)", projects, modules, submodules)

	// Step 2: destination root and run lock.
	if flags.dryRun {
		log.DryRunf("would create destination directory %s", destinationDir)
	} else {
		if err := os.MkdirAll(destinationDir, 0o755); err != nil {
			return model.WrapCLIError(model.ExitWriteFailed,
				fmt.Sprintf("failed to create destination directory %s", destinationDir), err)
		}

		lock := filelock.NewRunLock(destinationDir)
		acquired, err := lock.TryLock()
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to acquire destination lock", err)
		}
		if !acquired {
			return model.NewCLIError(model.ExitLockHeld,
				fmt.Sprintf("destination %s is locked by another rsorg run", destinationDir))
		}
		defer func() { _ = lock.Unlock() }()
	}

	// Step 3: leaf file copies. A failed copy does not stop its
	// siblings, but a failed batch stops the run before generation.
	leafCopier := copier.New(log, cfg.Workers, flags.dryRun)
	if err := leafCopier.CopyLeafFiles(structure); err != nil {
		return model.WrapCLIError(model.ExitWriteFailed, "leaf file copies failed", err)
	}

	// Step 4: aggregation files.
	gen := generator.New(log, cfg.Workers, flags.dryRun)
	if err := gen.WriteModFiles(structure); err != nil {
		return model.WrapCLIError(model.ExitWriteFailed, "mod.rs generation failed", err)
	}

	// Step 5: optional entrypoint.
	if flags.mainFile {
		if err := gen.WriteMainFile(destinationDir, structure); err != nil {
			return model.WrapCLIError(model.ExitWriteFailed, "main.rs generation failed", err)
		}
	}

	return nil
}

// loadConfig returns the run configuration: the defaults, or the
// --config file merged over them.
func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

// newRunLogger builds the console logger for a run. --log-level sets
// the threshold; --verbose forces debug.
func newRunLogger() *logger.Logger {
	level := logger.ParseLevel(logLevel)
	if verbose {
		level = logger.LevelDebug
	}
	return logger.New(os.Stdout, level)
}
