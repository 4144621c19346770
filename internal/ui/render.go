package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aanand-mishra/students-client/internal/form"
	"github.com/aanand-mishra/students-client/internal/types"
	"github.com/aanand-mishra/students-client/internal/validation"
)

// errWriter keeps the first write error so render code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func banner(ew *errWriter, loading bool, errMsg string) {
	if errMsg != "" {
		ew.printf("! %s\n", errMsg)
	}
	if loading {
		ew.printf("Loading...\n")
	}
}

func renderList(w io.Writer, students []types.Student, loading bool, errMsg string) error {
	ew := &errWriter{w: w}
	ew.printf("Students (%d)\n", len(students))
	banner(ew, loading, errMsg)

	if len(students) == 0 {
		if !loading {
			ew.printf("No students yet. Use \"new\" to add one.\n")
		}
		return ew.err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew.w = tw
	ew.printf("ID\tNAME\tMOBILE\tEMAIL\tCITY\tSTATE\n")
	for _, s := range students {
		ew.printf("%d\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Mobile, s.Email, s.City, s.State)
	}
	if ew.err != nil {
		return ew.err
	}
	return tw.Flush()
}

func renderForm(w io.Writer, title string, f *form.Student, loading bool, errMsg, notice string) error {
	ew := &errWriter{w: w}
	ew.printf("%s\n", title)
	banner(ew, loading, errMsg)
	if notice != "" {
		ew.printf("* %s\n", notice)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew.w = tw
	for _, field := range form.Fields {
		line := fmt.Sprintf("  %s\t%s\t%s", field, validation.Label(field), f.Get(field))
		if msg := f.Message(field); msg != "" {
			line += "\t<- " + msg
		}
		ew.printf("%s\n", line)
	}
	if ew.err != nil {
		return ew.err
	}
	return tw.Flush()
}

func renderDetail(w io.Writer, id int64, s *types.Student, loading bool, errMsg string) error {
	ew := &errWriter{w: w}
	ew.printf("Student #%d\n", id)
	banner(ew, loading, errMsg)
	if s == nil {
		return ew.err
	}

	address := strings.TrimSpace(strings.Join([]string{s.Address1, s.Address2}, "\n           "))
	ew.printf("  Name:    %s\n", s.Name)
	ew.printf("  Mobile:  %s\n", s.Mobile)
	ew.printf("  Email:   %s\n", s.Email)
	ew.printf("  City:    %s\n", s.City)
	ew.printf("  State:   %s\n", s.State)
	ew.printf("  Pincode: %s\n", s.Pincode)
	ew.printf("  Address: %s\n", address)
	return ew.err
}
