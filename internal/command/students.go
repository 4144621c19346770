package command

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/aanand-mishra/students-client/internal/types"
	"github.com/aanand-mishra/students-client/internal/validation"
)

// ListCommand prints every student.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List students",
		Action: func(c *cli.Context) error {
			rt, err := runtimeFrom(c)
			if err != nil {
				return err
			}
			list, err := rt.svc.ListAll(c.Context)
			if err != nil {
				return err
			}
			return rt.formatter.Format(c.App.Writer, list)
		},
	}
}

// GetCommand prints one student.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one student",
		ArgsUsage: "ID",
		Action: func(c *cli.Context) error {
			rt, err := runtimeFrom(c)
			if err != nil {
				return err
			}
			id, err := argID(c)
			if err != nil {
				return err
			}
			st, err := rt.svc.GetByID(c.Context, id)
			if err != nil {
				return err
			}
			return rt.formatter.Format(c.App.Writer, st)
		},
	}
}

// CreateCommand adds a student from flags.
func CreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a student",
		Flags: studentFlags(),
		Action: func(c *cli.Context) error {
			rt, err := runtimeFrom(c)
			if err != nil {
				return err
			}

			in := applyFlags(c, types.CreateStudentInput{})
			if err := validate(in); err != nil {
				return err
			}

			created, err := rt.svc.Create(c.Context, in)
			if err != nil {
				return err
			}
			return rt.formatter.Format(c.App.Writer, created)
		},
	}
}

// UpdateCommand changes the fields given as flags and keeps the rest.
func UpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a student; omitted fields keep their value",
		ArgsUsage: "ID",
		Flags:     studentFlags(),
		Action: func(c *cli.Context) error {
			rt, err := runtimeFrom(c)
			if err != nil {
				return err
			}
			id, err := argID(c)
			if err != nil {
				return err
			}

			current, err := rt.svc.GetByID(c.Context, id)
			if err != nil {
				return err
			}
			in := applyFlags(c, current.Input())
			if err := validate(in); err != nil {
				return err
			}

			if err := rt.svc.Update(c.Context, id, in); err != nil {
				return err
			}
			return rt.formatter.Format(c.App.Writer, current.Merge(in))
		},
	}
}

// DeleteCommand removes a student after confirmation.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a student",
		ArgsUsage: "ID",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Skip confirmation",
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := runtimeFrom(c)
			if err != nil {
				return err
			}
			id, err := argID(c)
			if err != nil {
				return err
			}

			if !c.Bool("force") {
				st, err := rt.svc.GetByID(c.Context, id)
				if err != nil {
					return err
				}
				if !confirm(c, fmt.Sprintf("Are you sure you want to delete %s?", st.Name)) {
					fmt.Fprintln(c.App.Writer, "Cancelled.")
					return nil
				}
			}

			if err := rt.svc.Delete(c.Context, id); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Student %d deleted.\n", id)
			return nil
		},
	}
}

func studentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Full name (required, 2-100 characters)"},
		&cli.StringFlag{Name: "mobile", Aliases: []string{"m"}, Usage: "Mobile number"},
		&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
		&cli.StringFlag{Name: "city", Usage: "City"},
		&cli.StringFlag{Name: "state", Usage: "State"},
		&cli.StringFlag{Name: "pincode", Aliases: []string{"p"}, Usage: "Postal code"},
		&cli.StringFlag{Name: "address1", Usage: "Address line 1"},
		&cli.StringFlag{Name: "address2", Usage: "Address line 2"},
	}
}

// applyFlags overlays every flag the user set onto in.
func applyFlags(c *cli.Context, in types.CreateStudentInput) types.CreateStudentInput {
	fields := map[string]*string{
		"name":     &in.Name,
		"mobile":   &in.Mobile,
		"email":    &in.Email,
		"city":     &in.City,
		"state":    &in.State,
		"pincode":  &in.Pincode,
		"address1": &in.Address1,
		"address2": &in.Address2,
	}
	for flag, p := range fields {
		if c.IsSet(flag) {
			*p = strings.TrimSpace(c.String(flag))
		}
	}
	return in
}

func validate(in types.CreateStudentInput) error {
	if errs := validation.Struct(in); len(errs) > 0 {
		return fmt.Errorf("invalid student: %s", validation.Join(errs))
	}
	return nil
}

func argID(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, errors.New("expected exactly one student ID")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid student ID %q", c.Args().First())
	}
	return id, nil
}

func confirm(c *cli.Context, prompt string) bool {
	fmt.Fprintf(c.App.Writer, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(c.App.Reader).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
