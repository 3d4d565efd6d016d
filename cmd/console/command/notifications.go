package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medidesk/console/notifications"
	"github.com/medidesk/console/remote"
)

var notificationsParams = struct {
	Token string
}{}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Notifications",
	Long:  "The notifications command is used to read the notifications of the patient service",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(listNotifications) },
}

func listNotifications(client remote.Client) error {
	token, err := resolveToken(notificationsParams.Token)
	if err != nil {
		return err
	}

	list, err := client.ListNotifications(context.TODO(), token)
	if err != nil {
		return err
	}

	for _, item := range notifications.Visible(list, nil) {
		fmt.Printf("%s %s - %s\n", item.Key, item.Time, item.Message)
	}
	fmt.Printf("Found %v notifications\n", len(list))

	return nil
}

func init() {
	notificationsCmd.PersistentFlags().StringVarP(&notificationsParams.Token, "token", "t", "", "The token of the patient service, defaults to "+tokenEnvKey)

	notificationsCmd.AddCommand(notificationsListCmd)
	rootCmd.AddCommand(notificationsCmd)
}
