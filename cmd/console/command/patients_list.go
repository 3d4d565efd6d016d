package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medidesk/console/dashboard"
	"github.com/medidesk/console/patients"
)

var patientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patients",
	Long:  "The list command prints the patients of a category matching the search text together with the category counts",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(listPatients) },
}

func listPatients(source patients.Source, logger *zap.SugaredLogger) error {
	token, err := resolveToken(patientsParams.Token)
	if err != nil {
		return err
	}

	snapshot, err := patients.NewCache(source, logger).Fetch(context.TODO(), token)
	if err != nil {
		return err
	}

	state := dashboard.NewState()
	state.SetActiveCategory(patients.CategoryId(patientsParams.Category))
	state.SetSearchQuery(patientsParams.Search)
	view := state.ViewSnapshot(snapshot)

	for _, category := range view.Categories {
		marker := " "
		if view.IsActive(category.Id) {
			marker = "*"
		}
		fmt.Printf("%s %s (%d)\n", marker, category.Label, category.Count)
	}
	fmt.Println()

	for _, p := range view.Visible {
		fmt.Printf("%s %s - %s [%s] %s\n", p.Id, p.Name, p.Status, p.Priority, p.Schedule)
	}
	fmt.Printf("Found %v of %v patients\n", len(view.Visible), view.Total)

	return nil
}

func init() {
	patientsCmd.AddCommand(patientsListCmd)
}
