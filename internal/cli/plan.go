// plan.go implements the "rsorg plan" command: a read-only view of the
// mapping the pipeline would act on. Nothing under the destination is
// created, checked or locked — plan works even when the destination
// does not exist yet.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/rsorg/internal/model"
	"github.com/mmr-tortoise/rsorg/internal/tree"
)

// NewPlanCommand creates the "plan" cobra command.
func NewPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the origin→destination mapping without writing anything",
		Long: `Plan walks the origin tree and prints the mapping that a run would use:
every project, module and submodule directory together with its
normalized destination path. With --json the full structure is printed
as JSON for machine consumption.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd)
		},
	}
}

// runPlan collects the structure and prints it in text or JSON form.
func runPlan(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mapper := tree.NewMapper(cfg)
	structure, err := mapper.Collect(originDir, destinationDir)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printPlanJSON(cmd, structure)
	}
	printPlanText(cmd, structure)
	return nil
}

// printPlanJSON marshals the full structure. The node tree already
// carries json tags, so the output mirrors the in-memory model.
func printPlanJSON(cmd *cobra.Command, structure *model.DirectoriesStructure) error {
	data, err := json.MarshalIndent(structure, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// printPlanText prints an indented tree of destination names with the
// original source names alongside, followed by a count summary.
func printPlanText(cmd *cobra.Command, structure *model.DirectoriesStructure) {
	out := cmd.OutOrStdout()

	for _, project := range structure.Projects {
		fmt.Fprintf(out, "%s/  (%s)\n", project.Mapping.DestName(), project.Mapping.Source)
		for _, module := range project.Modules {
			fmt.Fprintf(out, "  %s/\n", module.Mapping.DestName())
			for _, submodule := range module.Submodules {
				fmt.Fprintf(out, "    %s\n", submodule.DestName())
			}
		}
	}

	projects, modules, submodules := structure.CountDirs()
	fmt.Fprintf(out, "\n%d project(s), %d module(s), %d submodule(s)\n", projects, modules, submodules)
}
