package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypePull   Type = "pull"
	TypeDrop   Type = "drop"
	TypeDone   Type = "done"
	TypeMove   Type = "move"
	TypeTag    Type = "tag"
	TypeAssign Type = "assign"
	TypeSub    Type = "sub"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

// PullArgs, DropArgs, and DoneArgs default to the selected task when no id
// is given.
type PullArgs struct {
	TaskID string
}

type DropArgs struct {
	TaskID string
}

type DoneArgs struct {
	TaskID string
}

type MoveArgs struct {
	When string
}

// TagArgs covers all three tag operations: "assign" puts an existing tag on
// the selected task, "new" registers a tag, "rm" removes one.
type TagArgs struct {
	Action string
	Name   string
	Color  string
}

type AssignArgs struct {
	Query string
}

// SubArgs edits the selected task's subtask checklist. Index is the 1-based
// position shown in the backlog view.
type SubArgs struct {
	Action string
	Index  int
	Name   string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Pull   *PullArgs
	Drop   *DropArgs
	Done   *DoneArgs
	Move   *MoveArgs
	Tag    *TagArgs
	Assign *AssignArgs
	Sub    *SubArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		if len(args) == 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task name"}
		}
		return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Title: strings.Join(args, " ")}}, nil
	case TypePull:
		return Command{Type: TypePull, Raw: input, Pull: &PullArgs{TaskID: firstOrEmpty(args)}}, nil
	case TypeDrop:
		return Command{Type: TypeDrop, Raw: input, Drop: &DropArgs{TaskID: firstOrEmpty(args)}}, nil
	case TypeDone:
		return Command{Type: TypeDone, Raw: input, Done: &DoneArgs{TaskID: firstOrEmpty(args)}}, nil
	case TypeMove:
		if len(args) == 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires a date (today, tomorrow, or YYYY-MM-DD)"}
		}
		return Command{Type: TypeMove, Raw: input, Move: &MoveArgs{When: strings.ToLower(args[0])}}, nil
	case TypeTag:
		return parseTag(input, args)
	case TypeAssign:
		if len(args) == 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "assign requires a member name"}
		}
		return Command{Type: TypeAssign, Raw: input, Assign: &AssignArgs{Query: strings.Join(args, " ")}}, nil
	case TypeSub:
		return parseSub(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseTag handles `tag <name>` (assign), `tag new <name...> <color>`, and
// `tag rm <name...>`. The color comes last so multi-word tag names stay
// unquoted.
func parseTag(input string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "tag requires a tag name"}
	}
	switch strings.ToLower(args[0]) {
	case "new":
		rest := args[1:]
		if len(rest) < 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "tag new requires a name and a color (tag new <name> <color>)"}
		}
		name := strings.Join(rest[:len(rest)-1], " ")
		color := strings.ToLower(rest[len(rest)-1])
		return Command{Type: TypeTag, Raw: input, Tag: &TagArgs{Action: "new", Name: name, Color: color}}, nil
	case "rm":
		if len(args) < 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "tag rm requires a tag name"}
		}
		return Command{Type: TypeTag, Raw: input, Tag: &TagArgs{Action: "rm", Name: strings.Join(args[1:], " ")}}, nil
	default:
		return Command{Type: TypeTag, Raw: input, Tag: &TagArgs{Action: "assign", Name: strings.Join(args, " ")}}, nil
	}
}

// parseSub handles `sub add <name...>`, `sub done <n>`, `sub rm <n>`, and
// `sub rename <n> <name...>`.
func parseSub(input string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sub requires an action: add, done, rm, rename"}
	}
	action := strings.ToLower(args[0])
	rest := args[1:]
	switch action {
	case "add":
		if len(rest) == 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sub add requires a subtask name"}
		}
		return Command{Type: TypeSub, Raw: input, Sub: &SubArgs{Action: "add", Name: strings.Join(rest, " ")}}, nil
	case "done", "rm":
		idx, err := parseSubIndex(action, rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeSub, Raw: input, Sub: &SubArgs{Action: action, Index: idx}}, nil
	case "rename":
		if len(rest) < 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sub rename requires a position and a new name"}
		}
		idx, err := parseSubIndex(action, rest[:1])
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeSub, Raw: input, Sub: &SubArgs{Action: "rename", Index: idx, Name: strings.Join(rest[1:], " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown sub action %q (use add, done, rm, rename)", action)}
	}
}

func parseSubIndex(action string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("sub %s requires a subtask position", action)}
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%q is not a subtask position", args[0])}
	}
	return idx, nil
}

func firstOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
