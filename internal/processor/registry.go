// Registry of discrete (button) operations
package processor

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Operation groups decide where an operation's button is placed.
const (
	GroupFilter = "filter"
	GroupRotate = "rotate"
	GroupFlip   = "flip"
)

// Operation is a discrete, parameterless edit bound to a button.
type Operation struct {
	Name        string
	Label       string
	Description string
	Group       string
	Apply       func(input gocv.Mat) (gocv.Mat, error)
}

var (
	operations = make(map[string]Operation)
	order      []string
)

// Register adds op, replacing any operation with the same name in place.
func Register(op Operation) {
	if _, exists := operations[op.Name]; !exists {
		order = append(order, op.Name)
	}
	operations[op.Name] = op
}

func Get(name string) (Operation, bool) {
	op, exists := operations[name]
	return op, exists
}

func Apply(name string, input gocv.Mat) (gocv.Mat, error) {
	op, exists := operations[name]
	if !exists {
		return gocv.NewMat(), fmt.Errorf("%w: operation not found: %s", ErrInvalidArgument, name)
	}
	return op.Apply(input)
}

// Names lists the registered operations in registration order.
func Names() []string {
	return append([]string(nil), order...)
}

// ByGroup returns the operations of group in registration order.
func ByGroup(group string) []Operation {
	var ops []Operation
	for _, name := range Names() {
		if op := operations[name]; op.Group == group {
			ops = append(ops, op)
		}
	}
	return ops
}

func rotateBy(angle int) func(gocv.Mat) (gocv.Mat, error) {
	return func(m gocv.Mat) (gocv.Mat, error) { return Rotate(m, angle) }
}

func flipBy(mode string) func(gocv.Mat) (gocv.Mat, error) {
	return func(m gocv.Mat) (gocv.Mat, error) { return Flip(m, mode) }
}

func init() {
	Register(Operation{Name: "grayscale", Label: "Grayscale", Description: "Grayscale conversion", Group: GroupFilter, Apply: Grayscale})
	Register(Operation{Name: "edges", Label: "Edge Detection (Canny)", Description: "Canny edge detection", Group: GroupFilter, Apply: CannyEdges})

	Register(Operation{Name: "rotate_90", Label: "90°", Description: "Rotate 90°", Group: GroupRotate, Apply: rotateBy(90)})
	Register(Operation{Name: "rotate_180", Label: "180°", Description: "Rotate 180°", Group: GroupRotate, Apply: rotateBy(180)})
	Register(Operation{Name: "rotate_270", Label: "270°", Description: "Rotate 270°", Group: GroupRotate, Apply: rotateBy(270)})

	Register(Operation{Name: "flip_horizontal", Label: "Flip Horizontal", Description: "Flip horizontal", Group: GroupFlip, Apply: flipBy(FlipHorizontal)})
	Register(Operation{Name: "flip_vertical", Label: "Flip Vertical", Description: "Flip vertical", Group: GroupFlip, Apply: flipBy(FlipVertical)})
}
