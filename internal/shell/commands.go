package shell

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/aanand-mishra/students-client/internal/form"
	"github.com/aanand-mishra/students-client/internal/ui"
)

type command struct {
	name     string
	usage    string
	help     string
	rerender bool
	run      func(ctx context.Context, s *Shell, args string) error
}

// formController is what the create and edit views have in common.
type formController interface {
	Set(field, value string) error
	Submit(ctx context.Context) error
	Cancel()
}

var commands []command

func init() {
	commands = []command{
		{name: "list", usage: "list", help: "show all students", run: cmdList},
		{name: "open", usage: "open <path>", help: "go to a route such as /detail/3", run: cmdOpen},
		{name: "new", usage: "new", help: "open the create form", run: cmdNew},
		{name: "view", usage: "view <id>", help: "show one student", run: cmdView},
		{name: "edit", usage: "edit [id]", help: "open the edit form", run: cmdEdit},
		{name: "delete", usage: "delete [id]", help: "delete a student after confirmation", rerender: true, run: cmdDelete},
		{name: "retry", usage: "retry", help: "fetch the list again", rerender: true, run: cmdRetry},
		{name: "set", usage: "set <field> <value>", help: "change a form field (empty value clears it)", rerender: true, run: cmdSet},
		{name: "submit", usage: "submit", help: "save the form", rerender: true, run: cmdSubmit},
		{name: "cancel", usage: "cancel", help: "leave the form without saving", run: cmdCancel},
		{name: "back", usage: "back", help: "return to the list", run: cmdBack},
		{name: "show", usage: "show", help: "print the current screen again", rerender: true, run: cmdNoop},
		{name: "history", usage: "history", help: "list the commands entered so far", run: cmdHistory},
		{name: "help", usage: "help", help: "show this help", run: cmdHelp},
		{name: "exit", usage: "exit", help: "leave the shell", run: cmdExit},
		{name: "quit", usage: "quit", help: "leave the shell", run: cmdExit},
	}
}

func lookup(name string) (command, bool) {
	i := slices.IndexFunc(commands, func(c command) bool { return c.name == name })
	if i < 0 {
		return command{}, false
	}
	return commands[i], true
}

// suggest returns command names that start with prefix.
func suggest(prefix string) []string {
	if prefix == "" {
		return nil
	}
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c.name, prefix) {
			out = append(out, c.name)
		}
	}
	return out
}

// fieldAliases maps the short names accepted by "set" to form fields.
var fieldAliases = map[string]string{
	"name":     form.Name,
	"mobile":   form.Mobile,
	"email":    form.Email,
	"city":     form.City,
	"state":    form.State,
	"pincode":  form.Pincode,
	"address1": form.Address1,
	"address2": form.Address2,
}

func fieldName(s string) (string, error) {
	if f, ok := fieldAliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	if slices.Contains(form.Fields, s) {
		return s, nil
	}
	return "", fmt.Errorf("unknown field %q", s)
}

func errNotHere(cmd string) error {
	return fmt.Errorf("%q is not available on this screen", cmd)
}

func cmdList(_ context.Context, s *Shell, _ string) error {
	s.router.Navigate(ui.PathList)
	return nil
}

func cmdOpen(_ context.Context, s *Shell, args string) error {
	if args == "" {
		return errors.New("usage: open <path>")
	}
	s.router.Navigate(args)
	return nil
}

func cmdNew(_ context.Context, s *Shell, _ string) error {
	if v, ok := current[*ui.ListView](s); ok {
		v.Create()
		return nil
	}
	s.router.Navigate(ui.PathCreate)
	return nil
}

func cmdView(_ context.Context, s *Shell, args string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if v, ok := current[*ui.ListView](s); ok {
		v.View(id)
		return nil
	}
	s.router.Navigate(ui.DetailPath(id))
	return nil
}

func cmdEdit(_ context.Context, s *Shell, args string) error {
	if v, ok := current[*ui.DetailView](s); ok && args == "" {
		v.Edit()
		return nil
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if v, ok := current[*ui.ListView](s); ok {
		v.Edit(id)
		return nil
	}
	s.router.Navigate(ui.EditPath(id))
	return nil
}

func cmdDelete(ctx context.Context, s *Shell, args string) error {
	if v, ok := current[*ui.DetailView](s); ok {
		return v.Delete(ctx)
	}
	v, ok := current[*ui.ListView](s)
	if !ok {
		return errNotHere("delete")
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	return v.Delete(ctx, id)
}

func cmdRetry(ctx context.Context, s *Shell, _ string) error {
	v, ok := current[*ui.ListView](s)
	if !ok {
		return errNotHere("retry")
	}
	v.Retry(ctx)
	return nil
}

func cmdSet(_ context.Context, s *Shell, args string) error {
	v, ok := current[formController](s)
	if !ok {
		return errNotHere("set")
	}
	name, value, _ := strings.Cut(args, " ")
	if name == "" {
		return errors.New("usage: set <field> <value>")
	}
	field, err := fieldName(name)
	if err != nil {
		return err
	}
	return v.Set(field, strings.TrimSpace(value))
}

func cmdSubmit(ctx context.Context, s *Shell, _ string) error {
	v, ok := current[formController](s)
	if !ok {
		return errNotHere("submit")
	}
	return v.Submit(ctx)
}

func cmdCancel(_ context.Context, s *Shell, _ string) error {
	v, ok := current[formController](s)
	if !ok {
		return errNotHere("cancel")
	}
	v.Cancel()
	return nil
}

func cmdBack(_ context.Context, s *Shell, _ string) error {
	switch v := currentView(s).(type) {
	case *ui.DetailView:
		v.Back()
	case formController:
		v.Cancel()
	default:
		s.router.Navigate(ui.PathList)
	}
	return nil
}

func cmdNoop(context.Context, *Shell, string) error { return nil }

func cmdHistory(_ context.Context, s *Shell, _ string) error {
	for i, line := range s.History() {
		s.printf("%4d  %s\n", i+1, line)
	}
	return nil
}

func cmdHelp(_ context.Context, s *Shell, _ string) error {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()

	tw := tabwriter.NewWriter(s.out.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.usage, c.help)
	}
	fmt.Fprintln(tw, "Fields: name mobile email city state pincode address1 address2")
	return tw.Flush()
}

func cmdExit(context.Context, *Shell, string) error { return errExit }

func currentView(s *Shell) ui.View {
	_, v := s.router.Current()
	return v
}
