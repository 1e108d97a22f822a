package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nova-hris/internal/session"
	"nova-hris/internal/shared/counter"
	"nova-hris/internal/user"

	"github.com/spf13/cobra"
)

type createAdminOptions struct {
	email      string
	password   string
	name       string
	employeeID string
}

// cliActor stands in for an admin when bootstrapping the first account.
var cliActor = session.Actor{UID: "cli", Name: "nova cli", Role: session.RoleAdmin}

func newCreateAdminCmd(opts *rootOptions) *cobra.Command {
	o := &createAdminOptions{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			infra, err := opts.connect()
			if err != nil {
				return err
			}
			defer infra.Close()

			svc := user.NewServiceWithCounter(user.NewRepository(infra.GormDB), counter.NewRepository(infra.GormDB), infra.Logger)
			resp, err := svc.Create(context.Background(), cliActor, o.request())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %s\n", resp.Email, resp.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&o.email, "email", "", "admin email")
	cmd.Flags().StringVar(&o.password, "password", "", "admin password (min 6 characters)")
	cmd.Flags().StringVar(&o.name, "name", "", "display name")
	cmd.Flags().StringVar(&o.employeeID, "employee-id", "", "employee id (generated when empty)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (o *createAdminOptions) request() user.CreateEmployeeRequest {
	return user.CreateEmployeeRequest{
		Email:      o.email,
		Password:   o.password,
		Name:       o.name,
		EmployeeID: o.employeeID,
		Role:       user.RoleAdmin,
	}
}

func (o *createAdminOptions) validate() error {
	if !strings.Contains(o.email, "@") {
		return errors.New("--email must be an email address")
	}
	if len(o.password) < 6 {
		return errors.New("--password must be at least 6 characters")
	}
	if strings.TrimSpace(o.name) == "" {
		return errors.New("--name must not be blank")
	}
	return nil
}
