package cmd

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/piwi3910/SheetYield/internal/project"
	"github.com/spf13/cobra"
)

var templateDescription string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage saved job templates",
}

var templateSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save the given job as a reusable template",
	Long: `Save the sheet, figures and settings assembled from the job flags as a
template. A template with the same name is replaced.

Examples:
  sheetyield template save cabinet --sheet 2440x1220 --figure 720x560:2:Side`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateSave,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	RunE:  runTemplateList,
}

var templateRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Delete a saved template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateRemove,
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateSaveCmd, templateListCmd, templateRemoveCmd)
	addJobFlags(templateSaveCmd)
	templateSaveCmd.Flags().StringVar(&templateDescription, "description", "", "template description")
}

func loadTemplateStore() (model.TemplateStore, string, error) {
	path := dataPath("templates.json")
	store, err := project.LoadTemplates(path)
	return store, path, err
}

func runTemplateSave(cmd *cobra.Command, args []string) error {
	name := args[0]
	job, err := loadJob(cmd)
	if err != nil {
		return err
	}
	store, path, err := loadTemplateStore()
	if err != nil {
		return err
	}
	if old := store.FindByName(name); old != nil {
		store.Remove(old.ID)
	}
	store.Add(model.NewJobTemplate(name, templateDescription, job.Sheet, job.Figures, job.Settings))
	if err := project.SaveTemplates(path, store); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved template %q with %d figure types\n", name, len(job.Figures))
	return nil
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	store, _, err := loadTemplateStore()
	if err != nil {
		return err
	}
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "NAME\tSHEET\tTYPES\tDESCRIPTION")
	for _, t := range store.Templates {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.Name, t.Sheet, len(t.Figures), t.Description)
	}
	return tw.Flush()
}

func runTemplateRemove(cmd *cobra.Command, args []string) error {
	store, path, err := loadTemplateStore()
	if err != nil {
		return err
	}
	t := store.FindByName(args[0])
	if t == nil {
		return fmt.Errorf("template %q not found", args[0])
	}
	store.Remove(t.ID)
	return project.SaveTemplates(path, store)
}
