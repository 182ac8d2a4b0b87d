package user

import (
	"flag"
	"strings"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/schema"
)

type Command struct {
	*base.Command

	opts       base.Options
	flagEmail  string
	flagHandle string
}

func (c *Command) Synopsis() string {
	return "List users, then add, disable and delete a user"
}

func (c *Command) Help() string {
	return `Usage: vectara-examples user -email=<address> [options]

  This command lists the account's users, adds a user with the given email,
  disables the new user and finally deletes it. The run stops at the first
  failed step.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("user", flag.ContinueOnError))
	c.opts.AddFlags(f)

	f.StringVar(
		&c.flagEmail, "email", "",
		"(Required) Email address of the user to add.",
	)
	f.StringVar(
		&c.flagHandle, "handle", "",
		"Username of the user to add (default the local part of the email).",
	)

	return f
}

func (c *Command) Run(args []string) int {
	s := c.Setup(c.Flags(), &c.opts, args)
	if s == nil {
		return 1
	}
	defer s.Close()

	if c.flagEmail == "" {
		c.UI.Error("email is required")
		return 1
	}
	handle := c.flagHandle
	if handle == "" {
		handle, _, _ = strings.Cut(c.flagEmail, "@")
	}

	ctx, cancel := c.Context()
	defer cancel()

	cred, err := s.Credential(ctx, false)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	w := s.Workflow(cred)

	out, ok := w.REST(ctx, "list users", vectara.ListUsers, schema.ListUsersRequest{
		ListUsersType: schema.ListUsersAll,
	})
	if list, ok := base.Result[schema.ListUsersResponse](w, "list users", out, ok); ok {
		w.Print("list users", list.User)
	}

	out, ok = w.REST(ctx, "add user", vectara.ManageUser, manage(schema.UserActionAdd, schema.User{
		Handle: handle,
		Email:  c.flagEmail,
		Type:   schema.UserTypeUser,
		Role:   []string{schema.RoleAdmin},
	}))
	var created schema.User
	if resp, ok := base.Result[schema.ManageUserResponse](w, "add user", out, ok); ok {
		created = resp.Response[0].User
		if created.Handle == "" {
			created.Handle = handle
		}
		w.Print("add user", created)
	}

	target := schema.User{ID: created.ID, Handle: created.Handle}
	w.REST(ctx, "disable user", vectara.ManageUser, manage(schema.UserActionDisable, target))
	w.REST(ctx, "delete user", vectara.ManageUser, manage(schema.UserActionDelete, target))

	return w.ExitCode()
}

func manage(action string, u schema.User) schema.ManageUserRequest {
	return schema.ManageUserRequest{
		UserAction: []schema.UserAction{{User: u, UserActionType: action}},
	}
}
