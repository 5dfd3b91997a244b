// Package tree builds the source→destination correspondence for the
// three-level origin hierarchy (project/module/submodule).
//
// The walk is intentionally sequential: the resulting structure keeps
// filesystem enumeration order, which the entrypoint generator relies
// on. Deterministic output ordering for aggregation files is imposed
// later by sorting, never here.
package tree

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/rsorg/internal/config"
	"github.com/mmr-tortoise/rsorg/internal/model"
	"github.com/mmr-tortoise/rsorg/internal/naming"
)

// Mapper walks an origin tree and produces the DirectoriesStructure
// for a run.
type Mapper struct {
	cfg *config.Config
}

// NewMapper creates a Mapper using the given configuration. The
// configuration supplies the level-1 exclusion list; nil falls back to
// the defaults.
func NewMapper(cfg *config.Config) *Mapper {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Mapper{cfg: cfg}
}

// Collect enumerates up to three directory levels beneath originRoot
// and returns the fully populated structure:
//
//   - Level 1: direct subdirectories of originRoot, minus excluded
//     build/tooling folder names.
//   - Level 2: direct subdirectories of each level-1 directory.
//   - Level 3: direct subdirectories of each level-2 directory.
//
// Non-directory entries are ignored at every level. Each mapping keeps
// its source path unchanged and derives its destination by joining the
// parent mapping's destination with the normalized entry name.
//
// Collect only reads the origin tree; the destination is never touched.
// If originRoot cannot be listed, a CLIError with ExitOriginAccess is
// returned and no partial structure is produced.
func (m *Mapper) Collect(originRoot, destRoot string) (*model.DirectoriesStructure, error) {
	firstLevel, err := listSubdirs(originRoot)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitOriginAccess,
			fmt.Sprintf("failed to read origin directory %s", originRoot), err)
	}

	structure := &model.DirectoriesStructure{}

	for _, firstName := range firstLevel {
		if m.cfg.IsExcluded(firstName) {
			continue
		}

		project := model.ProjectNode{
			Mapping: model.PathMapping{
				Source: filepath.Join(originRoot, firstName),
				Dest:   filepath.Join(destRoot, naming.Normalize(firstName)),
			},
		}

		// Levels 2 and 3 have no exclusion filter. A project directory
		// that cannot be listed is a structural failure just like the
		// root: no partial structure is returned.
		secondLevel, err := listSubdirs(project.Mapping.Source)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitOriginAccess,
				fmt.Sprintf("failed to read directory %s", project.Mapping.Source), err)
		}

		for _, secondName := range secondLevel {
			module := model.ModuleNode{
				Mapping: model.PathMapping{
					Source: filepath.Join(project.Mapping.Source, secondName),
					Dest:   filepath.Join(project.Mapping.Dest, naming.Normalize(secondName)),
				},
			}

			thirdLevel, err := listSubdirs(module.Mapping.Source)
			if err != nil {
				return nil, model.WrapCLIError(model.ExitOriginAccess,
					fmt.Sprintf("failed to read directory %s", module.Mapping.Source), err)
			}

			for _, thirdName := range thirdLevel {
				module.Submodules = append(module.Submodules, model.PathMapping{
					Source: filepath.Join(module.Mapping.Source, thirdName),
					Dest:   filepath.Join(module.Mapping.Dest, naming.Normalize(thirdName)),
				})
			}

			project.Modules = append(project.Modules, module)
		}

		structure.Projects = append(structure.Projects, project)
	}

	return structure, nil
}

// listSubdirs returns the names of the direct subdirectories of dir in
// enumeration order. Files and other non-directory entries are skipped.
func listSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
