package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/schoolapp/internal/auth"
	"github.com/mrlokans/schoolapp/internal/config"
	"github.com/mrlokans/schoolapp/internal/entities"
	"github.com/mrlokans/schoolapp/internal/entrypoint"
)

// CreateUserCommand registers an account through the auth gateway without
// going through HTTP. Used to seed teacher accounts.
type CreateUserCommand struct {
	Name         string
	Email        string
	Password     string
	Role         string
	Grade        string
	DatabasePath string

	// Config overrides the environment-derived configuration. Optional.
	Config *config.Config
	Out    io.Writer
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{Out: os.Stdout}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)

	fs.StringVar(&cmd.Name, "name", "", "Display name (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address used to log in (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password; falls back to SCHOOLAPP_PASSWORD")
	fs.StringVar(&cmd.Role, "role", string(entities.RoleTeacher), "Role: student or teacher")
	fs.StringVar(&cmd.Grade, "grade", "", "Grade, required for students")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the database file (default: DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user and print its id and an access token.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -name Ann -email ann@school.example -password secret\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -name Sam -email sam@school.example -role student -grade 7\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Password == "" {
		cmd.Password = os.Getenv("SCHOOLAPP_PASSWORD")
	}

	if cmd.Name == "" || cmd.Email == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("name, email and password are required")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	cfg := cmd.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if cmd.DatabasePath != "" {
		cfg.Database.Path = cmd.DatabasePath
	}

	app, err := entrypoint.NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.Auth.Register(context.Background(), auth.RegisterInput{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
		Role:     entities.Role(cmd.Role),
		Grade:    cmd.Grade,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Created %s %s (%s)\n", cmd.Role, auth.NormalizeEmail(cmd.Email), res.UserID)
	fmt.Fprintf(cmd.Out, "access_token: %s\n", res.AccessToken)
	return nil
}
