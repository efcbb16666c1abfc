package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/utils"
	"github.com/spf13/cobra"
)

// userCmd 账户管理命令
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Account management commands",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		if err := runUserAdd(email, password, firstName, lastName); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
	},
}

var userTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for an account",
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if err := runUserToken(email, password); err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userTokenCmd)

	userAddCmd.Flags().String("email", "", "Account email")
	userAddCmd.Flags().String("password", "", "Account password (generated when empty)")
	userAddCmd.Flags().String("first-name", "", "First name")
	userAddCmd.Flags().String("last-name", "", "Last name")
	_ = userAddCmd.MarkFlagRequired("email")

	userTokenCmd.Flags().String("email", "", "Account email")
	userTokenCmd.Flags().String("password", "", "Account password")
	_ = userTokenCmd.MarkFlagRequired("email")
	_ = userTokenCmd.MarkFlagRequired("password")
}

func runUserAdd(email, password, firstName, lastName string) error {
	generated := password == ""
	if generated {
		secret, err := utils.GenerateSecret(12)
		if err != nil {
			return err
		}
		password = secret
	}

	container, err := openContainer()
	if err != nil {
		return err
	}
	defer container.Close()

	InitDatabase(container)
	ctx := context.Background()
	if err := container.InitServices(ctx); err != nil {
		return err
	}

	profile, err := container.Accounts.CreateUser(ctx, accounts.NewUser{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created user %d (%s)\n", profile.ID, profile.Email)
	if generated {
		fmt.Printf("Generated password: %s\n", password)
	}
	return nil
}

func runUserToken(email, password string) error {
	container, err := openContainer()
	if err != nil {
		return err
	}
	defer container.Close()

	ctx := context.Background()
	if err := container.GetConfig().Validate(); err != nil {
		return err
	}
	if err := container.InitServices(ctx); err != nil {
		return err
	}
	if err := container.InitAuth(); err != nil {
		return err
	}

	profile, err := container.Accounts.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}
	token, expiresAt, err := container.JWT.GenerateAccessToken(profile.ID, profile.Email)
	if err != nil {
		return err
	}
	fmt.Printf("Token for user %d (expires %s):\n%s\n", profile.ID, expiresAt.Format("2006-01-02 15:04:05"), token)
	return nil
}
