package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/rsorg/internal/model"
)

// MainFileName is the optional entrypoint file written at the
// destination root.
const MainFileName = "main.rs"

// MainFileContent renders the main.rs entrypoint for the whole
// structure: a dead-code allowance, one "mod <name>;" declaration per
// level-1 directory, and a main function body of commented lines — the
// source names uppercased as section markers and one commented
// fully-qualified main() invocation per leaf.
//
// Unlike mod.rs, iteration follows the structure's natural order at
// every level; no sorting is applied. The content carries no trailing
// newline.
func MainFileContent(structure *model.DirectoriesStructure) string {
	lines := []string{"#![allow(dead_code)]"}

	for _, project := range structure.Projects {
		lines = append(lines, fmt.Sprintf("mod %s;", project.Mapping.DestName()))
	}

	lines = append(lines, "\nfn main() {")

	for _, project := range structure.Projects {
		lines = append(lines, fmt.Sprintf("    // %s", upperSourceName(project.Mapping)))
		for _, module := range project.Modules {
			lines = append(lines, fmt.Sprintf("    // %s", upperSourceName(module.Mapping)))
			for _, submodule := range module.Submodules {
				lines = append(lines, fmt.Sprintf("    // %s::%s::%s::main();",
					project.Mapping.DestName(), module.Mapping.DestName(), submodule.DestName()))
			}
		}
	}

	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

// upperSourceName returns the original (un-normalized) directory name
// of a mapping, uppercased for use as a comment section marker.
func upperSourceName(m model.PathMapping) string {
	return strings.ToUpper(filepath.Base(m.Source))
}

// WriteMainFile writes the entrypoint file at the destination root,
// overwriting any previous one. Dry-run mode logs the would-be content
// instead.
func (g *Generator) WriteMainFile(destRoot string, structure *model.DirectoriesStructure) error {
	content := MainFileContent(structure)
	return g.writeFile(filepath.Join(destRoot, MainFileName), content)
}
