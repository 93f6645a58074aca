package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Pull   func(PullArgs) (Result, error)
	Drop   func(DropArgs) (Result, error)
	Done   func(DoneArgs) (Result, error)
	Move   func(MoveArgs) (Result, error)
	Tag    func(TagArgs) (Result, error)
	Assign func(AssignArgs) (Result, error)
	Sub    func(SubArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypePull:
		if handlers.Pull == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "pull handler not configured"}
		}
		return handlers.Pull(*cmd.Pull)
	case TypeDrop:
		if handlers.Drop == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "drop handler not configured"}
		}
		return handlers.Drop(*cmd.Drop)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "move handler not configured"}
		}
		return handlers.Move(*cmd.Move)
	case TypeTag:
		if handlers.Tag == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "tag handler not configured"}
		}
		return handlers.Tag(*cmd.Tag)
	case TypeAssign:
		if handlers.Assign == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "assign handler not configured"}
		}
		return handlers.Assign(*cmd.Assign)
	case TypeSub:
		if handlers.Sub == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "sub handler not configured"}
		}
		return handlers.Sub(*cmd.Sub)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
