// Package model defines the domain types for the rsorg CLI.
//
// The central entities are PathMapping (a source→destination path pair)
// and DirectoriesStructure (the three-level tree of mappings built from
// the origin directory). Both are write-once: the structure is built by
// the tree package at the start of a run and only read afterwards.
package model

import (
	"fmt"
	"path/filepath"
	"sort"
)

// PathMapping pairs an origin directory path with its normalized
// destination path. The Source path is always kept exactly as found on
// disk; only the Dest path carries normalized (snake_case) components.
//
// PathMapping is a plain value type: two mappings with equal fields are
// equal, which makes the type usable as a map key and comparable in tests.
type PathMapping struct {
	// Source is the original filesystem path, unchanged.
	Source string `json:"source"`

	// Dest is the destination path, each component normalized.
	Dest string `json:"dest"`
}

// DestName returns the final component of the destination path.
// This is the normalized name used in generated mod.rs declarations
// and as the sort key for deterministic output ordering.
func (m PathMapping) DestName() string {
	return filepath.Base(m.Dest)
}

// String returns a human-readable "source → dest" form for logging.
func (m PathMapping) String() string {
	return fmt.Sprintf("%s → %s", m.Source, m.Dest)
}

// LessByDestName reports whether a orders before b. The ordering is
// defined on the final destination path component only; source paths
// never participate. This is the single comparator used everywhere a
// deterministic mapping order is needed.
func LessByDestName(a, b PathMapping) bool {
	return a.DestName() < b.DestName()
}

// SortedByDestName returns a copy of mappings sorted with LessByDestName.
// The input slice is never modified: callers iterate the structure in
// insertion order elsewhere, so sorting must not reorder it in place.
func SortedByDestName(mappings []PathMapping) []PathMapping {
	sorted := make([]PathMapping, len(mappings))
	copy(sorted, mappings)
	sort.Slice(sorted, func(i, j int) bool {
		return LessByDestName(sorted[i], sorted[j])
	})
	return sorted
}

// ModuleNode is a level-2 directory mapping together with the level-3
// (leaf) mappings found directly beneath it. The Submodules slice keeps
// filesystem enumeration order; ordering is imposed only at generation
// time via SortedByDestName.
type ModuleNode struct {
	// Mapping is the level-2 directory's path pair. Its Dest is a direct
	// child of the owning ProjectNode's Dest.
	Mapping PathMapping `json:"mapping"`

	// Submodules holds one mapping per level-3 subdirectory. Each Dest is
	// a direct child of Mapping.Dest.
	Submodules []PathMapping `json:"submodules,omitempty"`
}

// ProjectNode is a level-1 directory mapping together with its level-2
// children. Like ModuleNode, child order is enumeration order.
type ProjectNode struct {
	// Mapping is the level-1 directory's path pair. Its Dest is a direct
	// child of the run's destination root.
	Mapping PathMapping `json:"mapping"`

	// Modules holds one node per level-2 subdirectory.
	Modules []ModuleNode `json:"modules,omitempty"`
}

// DirectoriesStructure is the in-memory correspondence between the
// origin tree and the destination tree, three levels deep. It is built
// once per run from a filesystem snapshot and read-only afterwards.
//
// The explicit node tree (rather than nested maps) preserves insertion
// order, which the entrypoint generator depends on, while the
// aggregation generator applies its own sorting on top.
type DirectoriesStructure struct {
	// Projects holds one node per level-1 origin subdirectory, in
	// enumeration order.
	Projects []ProjectNode `json:"projects,omitempty"`
}

// Leaves returns every level-3 mapping in the structure, in insertion
// order. This is the unit list the leaf file copier operates on.
func (s *DirectoriesStructure) Leaves() []PathMapping {
	var leaves []PathMapping
	for _, project := range s.Projects {
		for _, module := range project.Modules {
			leaves = append(leaves, module.Submodules...)
		}
	}
	return leaves
}

// CountDirs returns the number of mappings at each level. Used for
// summary logging and the plan command's footer.
func (s *DirectoriesStructure) CountDirs() (projects, modules, submodules int) {
	projects = len(s.Projects)
	for _, project := range s.Projects {
		modules += len(project.Modules)
		for _, module := range project.Modules {
			submodules += len(module.Submodules)
		}
	}
	return projects, modules, submodules
}
