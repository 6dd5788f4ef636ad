package task

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Factory builds a task from the parameters node of its definition
type Factory func(parameters *yaml.Node) (Task, error)

// Registry maps a task element name to its factory
var Registry map[string]Factory

func init() {
	if Registry == nil {
		Registry = make(map[string]Factory)
	}
}

// New builds a registered task
func New(element string, parameters *yaml.Node) (Task, error) {
	factory, ok := Registry[element]
	if !ok {
		return nil, fmt.Errorf("Unknown task element: %s", element)
	}
	return factory(parameters)
}

// ValidationError lists everything wrong with a task definition
type ValidationError struct {
	Element string
	Errs    []error
}

func (v *ValidationError) Error() string {
	errz := make([]string, len(v.Errs))
	for i, err := range v.Errs {
		errz[i] = err.Error()
	}
	return fmt.Sprintf("invalid %s: %s", v.Element, strings.Join(errz, ", "))
}

// MissingParameter is the error for an unset required parameter
func MissingParameter(name string) error {
	return fmt.Errorf("%s is required", name)
}
