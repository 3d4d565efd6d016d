package command

import (
	"github.com/spf13/cobra"
)

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Patients",
	Long:  "The patients command is used to list and export the patients of the patient service",
}

var patientsParams = struct {
	Token    string
	Category string
	Search   string
}{}

func init() {
	patientsCmd.PersistentFlags().StringVarP(&patientsParams.Token, "token", "t", "", "The token of the patient service, defaults to "+tokenEnvKey)
	patientsCmd.PersistentFlags().StringVarP(&patientsParams.Category, "category", "c", "all-patients", "The category of patients")
	patientsCmd.PersistentFlags().StringVarP(&patientsParams.Search, "search", "s", "", "Only patients whose name or id contains the text")

	rootCmd.AddCommand(patientsCmd)
}
