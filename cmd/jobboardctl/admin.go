package main

import (
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/repository"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var adminFlags struct {
	email    string
	password string
	name     string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account (prompts for missing values)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, err := valueOrPrompt(adminFlags.email, promptui.Prompt{
			Label:    "Email",
			Validate: notBlank,
		})
		if err != nil {
			return err
		}
		name, err := valueOrPrompt(adminFlags.name, promptui.Prompt{
			Label:   "Full name",
			Default: "Administrator",
		})
		if err != nil {
			return err
		}
		password, err := valueOrPrompt(adminFlags.password, promptui.Prompt{
			Label:    "Password",
			Mask:     '*',
			Validate: minLength(8),
		})
		if err != nil {
			return err
		}

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		svc := ucauth.NewService(repository.NewPostgresUserRepository(e.db))
		u, err := svc.CreateAdmin(cmd.Context(), email, password, name)
		switch {
		case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
			return fmt.Errorf("an account with email %s already exists", ucauth.NormalizeEmail(email))
		case errors.Is(err, ucauth.ErrInvalidInput):
			return fmt.Errorf("invalid email or password (minimum 8 characters)")
		case err != nil:
			return err
		}

		e.log.Info("admin created", zap.String("id", u.ID.String()), zap.String("email", u.Email))
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.email, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminFlags.password, "password", "", "admin password")
	createAdminCmd.Flags().StringVar(&adminFlags.name, "name", "", "admin full name")
}

func valueOrPrompt(v string, p promptui.Prompt) (string, error) {
	if strings.TrimSpace(v) != "" {
		return v, nil
	}
	out, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %v: %w", p.Label, err)
	}
	return out, nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

func minLength(n int) promptui.ValidateFunc {
	return func(s string) error {
		if len(s) < n {
			return fmt.Errorf("must be at least %d characters", n)
		}
		return nil
	}
}
