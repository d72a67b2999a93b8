package plan

import (
	"context"
	"fmt"
	"reflect"
)

// Func is a free function task: given the fully-bound inputs, it produces a
// product or an error.
type Func func(ctx context.Context, inputs map[string]any) (any, error)

// Task is the capability a task type's zero-value construction must produce.
// A TaskType's New method returns one of these.
type Task interface {
	Execute(ctx context.Context, inputs map[string]any) (any, error)
}

// TaskType is a task class: something that can be constructed with no
// arguments to yield a Task. This is the Go analogue of "a class that is a
// subclass of the abstract Task capability" from the original source.
type TaskType interface {
	New() Task
}

// kind tags which side of the Categorization union is populated.
type kind int

const (
	kindFunc kind = iota
	kindTaskType
)

// Categorization is the tagged variant {Func(f) | TaskType(T)} a Plan binds
// its work to. It is deliberately not an interface with behavior of its own:
// per the design notes, task shape is data, decided once at classification
// time and carried structurally from then on.
type Categorization struct {
	kind     kind
	fn       Func
	taskType TaskType
}

// OfFunc wraps a Func as a Categorization.
func OfFunc(fn Func) Categorization {
	return Categorization{kind: kindFunc, fn: fn}
}

// OfTaskType wraps a TaskType as a Categorization.
func OfTaskType(t TaskType) Categorization {
	return Categorization{kind: kindTaskType, taskType: t}
}

// IsTaskType reports whether the categorization holds a TaskType.
func (c Categorization) IsTaskType() bool {
	return c.kind == kindTaskType
}

// Value returns whichever side is populated, as an any: either the Func or
// the TaskType.
func (c Categorization) Value() any {
	if c.IsTaskType() {
		return c.taskType
	}
	return c.fn
}

// Invoke runs the categorized task against the given fully-bound inputs. If
// the categorization holds a TaskType, a fresh Task is constructed for each
// invocation, matching the "no-arg construction" contract.
func (c Categorization) Invoke(ctx context.Context, inputs map[string]any) (any, error) {
	if c.IsTaskType() {
		return c.taskType.New().Execute(ctx, inputs)
	}
	return c.fn(ctx, inputs)
}

// identityKey returns a stable, comparable value identifying this
// categorization for structural hashing purposes: a named function
// contributes its code pointer, a task type contributes its reflect.Type —
// directly mirroring spec's description of the task side as "a pointer to a
// named function or a named task type".
func (c Categorization) identityKey() any {
	if c.IsTaskType() {
		return reflect.TypeOf(c.taskType)
	}
	return reflect.ValueOf(c.fn).Pointer()
}

func (c Categorization) String() string {
	if c.IsTaskType() {
		return fmt.Sprintf("tasktype(%s)", reflect.TypeOf(c.taskType))
	}
	return fmt.Sprintf("func(%#x)", reflect.ValueOf(c.fn).Pointer())
}

// CategorizationError reports that a value could not be classified as
// either a Func or a TaskType.
type CategorizationError struct {
	Value any
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("plan: %T is not a valid task: must be a plan.Func or implement plan.TaskType", e.Value)
}

// Classify converts an arbitrary value into a Categorization: an existing
// Categorization passes through unchanged, a TaskType is wrapped as such,
// and a Func is wrapped as a function task. Anything else is a
// CategorizationError — the Go analogue of "a class must be a subclass of
// the abstract Task capability, otherwise it is an error".
func Classify(value any) (Categorization, error) {
	switch v := value.(type) {
	case Categorization:
		return v, nil
	case TaskType:
		return OfTaskType(v), nil
	case Func:
		return OfFunc(v), nil
	case func(ctx context.Context, inputs map[string]any) (any, error):
		return OfFunc(v), nil
	default:
		return Categorization{}, &CategorizationError{Value: value}
	}
}
