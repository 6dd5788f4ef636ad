// Package solsta deploys a directory with the Solsta release_deploy tool.
package solsta

import (
	"encoding/xml"
	"fmt"
	"path/filepath"

	"github.com/factorysh/solsta/filespec"
	"github.com/factorysh/solsta/runners"
	"github.com/factorysh/solsta/task"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Element is the name of the task in graph definitions
const Element = "SolstaDeploy"

func init() {
	task.Registry[Element] = func(parameters *yaml.Node) (task.Task, error) {
		var p Parameters
		if parameters != nil {
			err := parameters.Decode(&p)
			if err != nil {
				return nil, err
			}
		}
		t, err := New(p)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

var _ task.Task = &Task{}

// ExitError is a deployment which exited with a non zero code
type ExitError struct {
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("Solsta deployment failed with exit code %d", e.ExitCode)
}

// Run executes a command and returns its exit code
type Run func(logger log.FieldLogger, executable string, args []string) (int, error)

// Task deploys with release_deploy
type Task struct {
	Parameters Parameters
	run        Run
}

// New validates the parameters and builds a task
func New(p Parameters) (*Task, error) {
	errs := p.Validate()
	if len(errs) > 0 {
		return nil, &task.ValidationError{
			Element: Element,
			Errs:    errs,
		}
	}
	return &Task{
		Parameters: p,
		run:        runners.Run,
	}, nil
}

// Executable is release_deploy, in the build tools directory
func (t *Task) Executable(base string) string {
	p := t.Parameters.resolve(base)
	return filepath.Join(p.BuildToolsDirectory, "release_deploy", "release_deploy.exe")
}

// CommandLine of the deployment, paths resolved from base
func (t *Task) CommandLine(base string) Arguments {
	p := t.Parameters.resolve(base)
	return p.Arguments()
}

// Execute the deployment. The credentials file is the build product.
func (t *Task) Execute(job *task.JobContext, products task.FileSet, tags task.TagMap) error {
	l := job.Log.WithField("task", Element)

	if t.Parameters.Files != "" {
		files, err := filespec.Resolve(job.WorkDir, t.Parameters.Files, tags)
		if err != nil {
			return err
		}
		for _, f := range files.Sorted() {
			l.Info(f)
		}
	}

	args := t.CommandLine(job.WorkDir)
	executable := t.Executable(job.WorkDir)
	l.WithField("executable", executable).Infof("Executing Solsta deployment with command: %s", args)

	err := runners.EnsureBin(executable)
	if err != nil {
		return err
	}
	exitCode, err := t.run(l, executable, args.Argv())
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return &ExitError{ExitCode: exitCode}
	}

	products.Add(task.NewFileReference(job.WorkDir, t.Parameters.ConsoleCredentials))
	return nil
}

// Write the definition as a SolstaDeploy element
func (t *Task) Write(enc *xml.Encoder) error {
	return enc.EncodeElement(t.Parameters, xml.StartElement{
		Name: xml.Name{Local: Element},
	})
}

// FindConsumedTagNames are the tags of Files
func (t *Task) FindConsumedTagNames() []string {
	return filespec.FindTagNamesFromFilespec(t.Parameters.Files)
}

// FindProducedTagNames are the tags of Tag
func (t *Task) FindProducedTagNames() []string {
	return filespec.FindTagNamesFromList(t.Parameters.Tag)
}
