package command

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medidesk/console/dashboard"
	"github.com/medidesk/console/patients"
)

var patientsExportParams = struct {
	Out string
}{}

var patientsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export patients",
	Long:  "The export command writes the patients of a category matching the search text to an xlsx workbook",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(exportPatients) },
}

func exportPatients(source patients.Source, logger *zap.SugaredLogger) error {
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

	f, err := os.Create(patientsExportParams.Out)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", patientsExportParams.Out, err)
	}
	defer f.Close()

	if err := patients.Export(f, view.Visible); err != nil {
		return err
	}

	fmt.Printf("Exported %v patients to %s\n", len(view.Visible), patientsExportParams.Out)
	return nil
}

func init() {
	patientsExportCmd.Flags().StringVarP(&patientsExportParams.Out, "out", "o", "patients.xlsx", "The file to write")

	patientsCmd.AddCommand(patientsExportCmd)
}
