package generator

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mmr-tortoise/rsorg/internal/filelock"
	"github.com/mmr-tortoise/rsorg/internal/logger"
	"github.com/mmr-tortoise/rsorg/internal/model"
	"github.com/mmr-tortoise/rsorg/internal/pool"
)

// ModFileName is the aggregation file written into each level-1
// destination directory.
const ModFileName = "mod.rs"

// Generator writes the declaration files for a run.
type Generator struct {
	log     *logger.Logger
	workers int
	dryRun  bool
}

// New creates a Generator. The logger receives one line per written
// file or dry-run simulation; workers bounds the concurrent writes.
func New(log *logger.Logger, workers int, dryRun bool) *Generator {
	return &Generator{log: log, workers: workers, dryRun: dryRun}
}

// ModFileContent renders the mod.rs body for one level-1 node.
//
// Level-2 modules become "pub mod <name> { ... }" blocks separated by a
// single blank line, each holding one "pub mod <name>;" line per
// level-3 submodule. Both levels are sorted by destination name so the
// output is identical across runs. The content carries no trailing
// newline.
func ModFileContent(project model.ProjectNode) string {
	modules := make([]model.ModuleNode, len(project.Modules))
	copy(modules, project.Modules)
	sortModules(modules)

	blocks := make([]string, 0, len(modules))
	for _, module := range modules {
		var lines []string
		for _, submodule := range model.SortedByDestName(module.Submodules) {
			lines = append(lines, fmt.Sprintf("    pub mod %s;", submodule.DestName()))
		}
		block := fmt.Sprintf("pub mod %s {\n%s\n}", module.Mapping.DestName(), strings.Join(lines, "\n"))
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n")
}

// sortModules orders level-2 nodes with the dest-name comparator, the
// same ordering applied to the level-3 lines inside each block.
func sortModules(modules []model.ModuleNode) {
	sort.Slice(modules, func(i, j int) bool {
		return model.LessByDestName(modules[i].Mapping, modules[j].Mapping)
	})
}

// WriteModFiles writes one mod.rs into every level-1 destination
// directory. All writes run concurrently; each targets a distinct file.
// Failures are joined after the batch completes, so one failed write
// does not suppress its siblings. Existing mod.rs files are overwritten.
func (g *Generator) WriteModFiles(structure *model.DirectoriesStructure) error {
	var tasks []pool.Task

	for _, project := range structure.Projects {
		content := ModFileContent(project)
		dest := filepath.Join(project.Mapping.Dest, ModFileName)
		tasks = append(tasks, g.writeTask(dest, content))
	}

	return pool.Run(g.workers, tasks)
}

// writeTask returns the deferred write of one generated file.
func (g *Generator) writeTask(dest, content string) pool.Task {
	return func() error {
		return g.writeFile(dest, content)
	}
}

// writeFile writes content to dest atomically, creating missing parent
// directories first. Dry-run mode logs the would-be content instead.
func (g *Generator) writeFile(dest, content string) error {
	if g.dryRun {
		g.log.DryRunf("would write to %s, content:\n%s", dest, content)
		return nil
	}

	if err := filelock.AtomicWrite(dest, []byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	g.log.Infof("wrote %s", dest)
	return nil
}
