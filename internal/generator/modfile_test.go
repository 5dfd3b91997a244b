package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/rsorg/internal/logger"
	"github.com/mmr-tortoise/rsorg/internal/model"
)

// project builds a ProjectNode rooted at dest with the given module
// name → submodule names layout, in the given insertion order.
func project(dest string, modules ...model.ModuleNode) model.ProjectNode {
	return model.ProjectNode{
		Mapping: model.PathMapping{Dest: dest},
		Modules: modules,
	}
}

// module builds a ModuleNode beneath parent with leaf names as
// submodule destinations.
func module(parent, name string, leafNames ...string) model.ModuleNode {
	node := model.ModuleNode{
		Mapping: model.PathMapping{Dest: filepath.Join(parent, name)},
	}
	for _, leaf := range leafNames {
		node.Submodules = append(node.Submodules, model.PathMapping{
			Dest: filepath.Join(parent, name, leaf),
		})
	}
	return node
}

// TestModFileContent_SingleModule verifies the exact generated block
// for one module with one submodule.
func TestModFileContent_SingleModule(t *testing.T) {
	p := project("d/first_module", module("d/first_module", "second_module", "third_module"))

	content := ModFileContent(p)

	assert.Equal(t, "pub mod second_module {\n    pub mod third_module;\n}", content)
	assert.Contains(t, content, "pub mod second_module {")
	assert.Contains(t, content, "    pub mod third_module;")
}

// TestModFileContent_SortsModulesAndSubmodules verifies both levels are
// ordered by destination name regardless of insertion order, and that
// blocks are separated by exactly one blank line.
func TestModFileContent_SortsModulesAndSubmodules(t *testing.T) {
	p := project("d/p",
		module("d/p", "b_mod", "z_leaf", "a_leaf"),
		module("d/p", "a_mod", "only_leaf"),
	)

	content := ModFileContent(p)

	expected := "pub mod a_mod {\n" +
		"    pub mod only_leaf;\n" +
		"}\n" +
		"\n" +
		"pub mod b_mod {\n" +
		"    pub mod a_leaf;\n" +
		"    pub mod z_leaf;\n" +
		"}"
	assert.Equal(t, expected, content)

	// Order must be imposed at generation time only: the node keeps its
	// insertion order.
	assert.Equal(t, "b_mod", p.Modules[0].Mapping.DestName())
	assert.Equal(t, "z_leaf", p.Modules[0].Submodules[0].DestName())
}

// TestModFileContent_EmptyModule verifies a module without submodules
// still produces a block, with an empty body line.
func TestModFileContent_EmptyModule(t *testing.T) {
	p := project("d/p", module("d/p", "empty_mod"))

	assert.Equal(t, "pub mod empty_mod {\n\n}", ModFileContent(p))
}

// TestModFileContent_NoModules verifies a project without level-2
// children produces empty content (an empty mod.rs is still written).
func TestModFileContent_NoModules(t *testing.T) {
	assert.Equal(t, "", ModFileContent(project("d/p")))
}

// TestWriteModFiles verifies one mod.rs lands in each level-1
// destination directory, with parent directories created on demand.
func TestWriteModFiles(t *testing.T) {
	dest := t.TempDir()
	structure := &model.DirectoriesStructure{
		Projects: []model.ProjectNode{
			project(filepath.Join(dest, "p_one"), module(filepath.Join(dest, "p_one"), "m_one", "leaf")),
			project(filepath.Join(dest, "p_two")),
		},
	}

	var buf bytes.Buffer
	gen := New(logger.New(&buf, logger.LevelDebug), 2, false)
	require.NoError(t, gen.WriteModFiles(structure))

	one, err := os.ReadFile(filepath.Join(dest, "p_one", "mod.rs"))
	require.NoError(t, err)
	assert.Equal(t, "pub mod m_one {\n    pub mod leaf;\n}", string(one))

	two, err := os.ReadFile(filepath.Join(dest, "p_two", "mod.rs"))
	require.NoError(t, err)
	assert.Empty(t, string(two))
}

// TestWriteModFiles_OverwritesPrevious verifies aggregation files are
// regenerated unconditionally, unlike leaf copies which skip existing
// destinations.
func TestWriteModFiles_OverwritesPrevious(t *testing.T) {
	dest := t.TempDir()
	modPath := filepath.Join(dest, "p", "mod.rs")
	require.NoError(t, os.MkdirAll(filepath.Dir(modPath), 0o755))
	require.NoError(t, os.WriteFile(modPath, []byte("stale content"), 0o644))

	structure := &model.DirectoriesStructure{
		Projects: []model.ProjectNode{
			project(filepath.Join(dest, "p"), module(filepath.Join(dest, "p"), "fresh_mod", "leaf")),
		},
	}

	var buf bytes.Buffer
	gen := New(logger.New(&buf, logger.LevelDebug), 1, false)
	require.NoError(t, gen.WriteModFiles(structure))

	data, err := os.ReadFile(modPath)
	require.NoError(t, err)
	assert.Equal(t, "pub mod fresh_mod {\n    pub mod leaf;\n}", string(data))
}

// TestWriteModFiles_DryRun verifies dry-run logs the would-be content
// without creating anything on disk.
func TestWriteModFiles_DryRun(t *testing.T) {
	dest := t.TempDir()
	structure := &model.DirectoriesStructure{
		Projects: []model.ProjectNode{
			project(filepath.Join(dest, "p"), module(filepath.Join(dest, "p"), "m", "leaf")),
		},
	}

	var buf bytes.Buffer
	gen := New(logger.New(&buf, logger.LevelDebug), 1, true)
	require.NoError(t, gen.WriteModFiles(structure))

	assert.NoFileExists(t, filepath.Join(dest, "p", "mod.rs"))
	assert.NoDirExists(t, filepath.Join(dest, "p"))
	assert.Contains(t, buf.String(), "[DRY RUN] would write to")
	assert.Contains(t, buf.String(), "pub mod m {")
}
