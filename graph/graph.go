// Package graph loads build graph definitions and runs their tasks.
//
// A definition is a YAML file listing nodes, each with a list of task
// elements. Nodes and their tasks run in declaration order; a task can only
// consume tags produced by a task declared before it.
package graph

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/factorysh/solsta/task"
	"gopkg.in/yaml.v3"
)

// Definition is the raw YAML of a graph
type Definition struct {
	Nodes []NodeDefinition `yaml:"nodes"`
}

type NodeDefinition struct {
	Name  string           `yaml:"name"`
	Tasks []TaskDefinition `yaml:"tasks"`
}

type TaskDefinition struct {
	Element    string    `yaml:"element"`
	Parameters yaml.Node `yaml:"parameters"`
}

// Step is a task of a node
type Step struct {
	Node    string
	Element string
	Task    task.Task
}

// Graph is a loaded definition
type Graph struct {
	BaseDir string // relative paths are resolved from here
	Nodes   []string
	Steps   []Step
}

// Load a definition file. Relative paths of the definition are relative to
// its directory.
func Load(path string) (*Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw, filepath.Dir(abs))
}

// Parse a definition and instantiate its tasks
func Parse(raw []byte, baseDir string) (*Graph, error) {
	var def Definition
	err := yaml.Unmarshal(raw, &def)
	if err != nil {
		return nil, err
	}
	g := &Graph{
		BaseDir: baseDir,
		Nodes:   make([]string, 0, len(def.Nodes)),
		Steps:   make([]Step, 0),
	}
	for _, node := range def.Nodes {
		if node.Name == "" {
			return nil, fmt.Errorf("A node needs a name")
		}
		g.Nodes = append(g.Nodes, node.Name)
		for _, td := range node.Tasks {
			var parameters *yaml.Node
			if td.Parameters.Kind != 0 {
				parameters = &td.Parameters
			}
			t, err := task.New(td.Element, parameters)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", node.Name, err)
			}
			g.Steps = append(g.Steps, Step{
				Node:    node.Name,
				Element: td.Element,
				Task:    t,
			})
		}
	}
	err = g.checkTags()
	if err != nil {
		return nil, err
	}
	return g, nil
}

// checkTags ensures every consumed tag is produced by an earlier task
func (g *Graph) checkTags() error {
	produced := make(map[string]bool)
	for _, step := range g.Steps {
		for _, tag := range step.Task.FindConsumedTagNames() {
			if !produced[tag] {
				return fmt.Errorf("node %s: %s consumes %s which is not produced by an earlier task",
					step.Node, step.Element, tag)
			}
		}
		for _, tag := range step.Task.FindProducedTagNames() {
			produced[tag] = true
		}
	}
	return nil
}

// Write the graph as XML
func (g *Graph) Write(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	root := xml.StartElement{Name: xml.Name{Local: "BuildGraph"}}
	err := enc.EncodeToken(root)
	if err != nil {
		return err
	}
	for _, name := range g.Nodes {
		node := xml.StartElement{
			Name: xml.Name{Local: "Node"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "Name"}, Value: name}},
		}
		err = enc.EncodeToken(node)
		if err != nil {
			return err
		}
		for _, step := range g.Steps {
			if step.Node != name {
				continue
			}
			err = step.Task.Write(enc)
			if err != nil {
				return err
			}
		}
		err = enc.EncodeToken(node.End())
		if err != nil {
			return err
		}
	}
	err = enc.EncodeToken(root.End())
	if err != nil {
		return err
	}
	return enc.Flush()
}
