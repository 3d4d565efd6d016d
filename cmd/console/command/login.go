package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medidesk/console/auth"
	"github.com/medidesk/console/remote"
)

var loginParams = struct {
	Email    string
	Password string
}{}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the patient service",
	Long:  "The login command authenticates with the patient service and prints the issued token",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(login) },
}

func login(client remote.Client) error {
	form := auth.LoginForm{Email: loginParams.Email, Password: loginParams.Password}
	if err := form.Validate(); err != nil {
		return err
	}

	res, err := client.Login(context.TODO(), remote.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return err
	}

	token := auth.NewToken(res.Token)
	fmt.Printf("Logged in as %s\n", res.User.DisplayName())
	if !token.Expiry.IsZero() {
		fmt.Printf("Token expires at %s\n", token.Expiry.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Printf("export %s=%s\n", tokenEnvKey, res.Token)

	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginParams.Email, "email", "", "The email of the user")
	loginCmd.Flags().StringVar(&loginParams.Password, "password", "", "The password of the user")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd)
}
