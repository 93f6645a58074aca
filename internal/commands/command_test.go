package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add finish essay", TypeAdd},
		{"pull", TypePull},
		{"drop task-3", TypeDrop},
		{"done", TypeDone},
		{"move tomorrow", TypeMove},
		{"tag Courses", TypeTag},
		{"assign sarah", TypeAssign},
		{"sub add outline chapter", TypeSub},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseMultiWordArgs(t *testing.T) {
	cmd, err := Parse("/add write final essay")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add == nil || cmd.Add.Title != "write final essay" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("tag Project Team")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Tag == nil || cmd.Tag.Name != "Project Team" {
		t.Fatalf("unexpected tag args: %+v", cmd.Tag)
	}
}

func TestParseTagActions(t *testing.T) {
	cmd, err := Parse("tag new Project Team blue")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Tag == nil || cmd.Tag.Action != "new" || cmd.Tag.Name != "Project Team" || cmd.Tag.Color != "blue" {
		t.Fatalf("unexpected tag args: %+v", cmd.Tag)
	}

	cmd, err = Parse("tag rm Project Team")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Tag == nil || cmd.Tag.Action != "rm" || cmd.Tag.Name != "Project Team" {
		t.Fatalf("unexpected tag args: %+v", cmd.Tag)
	}

	cmd, err = Parse("tag Courses")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Tag == nil || cmd.Tag.Action != "assign" || cmd.Tag.Name != "Courses" {
		t.Fatalf("unexpected tag args: %+v", cmd.Tag)
	}

	_, err = Parse("tag new Lonely")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument for tag new without color, got %v", err)
	}
}

func TestParseSubActions(t *testing.T) {
	cmd, err := Parse("sub add outline the chapter")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Sub == nil || cmd.Sub.Action != "add" || cmd.Sub.Name != "outline the chapter" {
		t.Fatalf("unexpected sub args: %+v", cmd.Sub)
	}

	cmd, err = Parse("sub done 2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Sub == nil || cmd.Sub.Action != "done" || cmd.Sub.Index != 2 {
		t.Fatalf("unexpected sub args: %+v", cmd.Sub)
	}

	cmd, err = Parse("sub rename 1 second draft")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Sub == nil || cmd.Sub.Action != "rename" || cmd.Sub.Index != 1 || cmd.Sub.Name != "second draft" {
		t.Fatalf("unexpected sub args: %+v", cmd.Sub)
	}
}

func TestParseSubRejectsBadInput(t *testing.T) {
	for _, in := range []string{"sub", "sub add", "sub done", "sub done zero", "sub done 0", "sub rm -1", "sub rename 1", "sub shuffle 1"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseMissingArgs(t *testing.T) {
	for _, in := range []string{"add", "move", "tag", "assign"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/", "/   "} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/pull task-7")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Pull: func(a PullArgs) (Result, error) {
			called = true
			if a.TaskID != "task-7" {
				t.Fatalf("unexpected task id: %q", a.TaskID)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("handler not dispatched: called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("done")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler missing error, got %v", err)
	}
}
