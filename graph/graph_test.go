package graph

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/factorysh/solsta/filespec"
	"github.com/factorysh/solsta/pubsub"
	_ "github.com/factorysh/solsta/solsta"
	"github.com/factorysh/solsta/store"
	"github.com/factorysh/solsta/task"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fakeTask adds Output to the products, or fails
type fakeTask struct {
	Output string `yaml:"Output"`
	Files  string `yaml:"Files"`
	Tag    string `yaml:"Tag"`
	Fail   bool   `yaml:"Fail"`
	seen   task.FileSet
}

func (f *fakeTask) Execute(job *task.JobContext, products task.FileSet, tags task.TagMap) error {
	if f.Files != "" {
		files, err := filespec.Resolve(job.WorkDir, f.Files, tags)
		if err != nil {
			return err
		}
		f.seen = files
	}
	if f.Fail {
		return errors.New("boom")
	}
	products.Add(task.NewFileReference(job.WorkDir, f.Output))
	return nil
}

func (f *fakeTask) Write(enc *xml.Encoder) error {
	return enc.EncodeElement(struct {
		Output string `xml:"Output,attr"`
	}{f.Output}, xml.StartElement{Name: xml.Name{Local: "Fake"}})
}

func (f *fakeTask) FindConsumedTagNames() []string {
	return filespec.FindTagNamesFromFilespec(f.Files)
}

func (f *fakeTask) FindProducedTagNames() []string {
	return filespec.FindTagNamesFromList(f.Tag)
}

func init() {
	task.Registry["Fake"] = func(parameters *yaml.Node) (task.Task, error) {
		f := &fakeTask{}
		if parameters != nil {
			err := parameters.Decode(f)
			if err != nil {
				return nil, err
			}
		}
		return f, nil
	}
}

const chain = `
nodes:
  - name: Build
    tasks:
      - element: Fake
        parameters:
          Output: game.pak
          Tag: "#Built"
  - name: Deploy
    tasks:
      - element: Fake
        parameters:
          Output: creds.json
          Files: "#Built"
          Tag: "#Deployed"
`

func TestParse(t *testing.T) {
	g, err := Parse([]byte(chain), "/work")
	require.NoError(t, err)
	assert.Equal(t, []string{"Build", "Deploy"}, g.Nodes)
	require.Len(t, g.Steps, 2)
	assert.Equal(t, "Deploy", g.Steps[1].Node)
	assert.Equal(t, "Fake", g.Steps[1].Element)

	tests := map[string]struct {
		src    string
		expect string
	}{
		"unknown element": {
			src:    "nodes:\n  - name: A\n    tasks:\n      - element: Plop\n",
			expect: "Unknown task element",
		},
		"no name": {
			src:    "nodes:\n  - tasks: []\n",
			expect: "needs a name",
		},
		"tag from nowhere": {
			src:    "nodes:\n  - name: A\n    tasks:\n      - element: Fake\n        parameters:\n          Files: \"#Built\"\n",
			expect: "not produced by an earlier task",
		},
		"invalid solsta": {
			src:    "nodes:\n  - name: A\n    tasks:\n      - element: SolstaDeploy\n        parameters:\n          Source: build\n",
			expect: "BuildToolsDirectory is required",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), "/work")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expect)
		})
	}
}

func TestParseSolsta(t *testing.T) {
	src := `
nodes:
  - name: Deploy
    tasks:
      - element: SolstaDeploy
        parameters:
          BuildToolsDirectory: sdk
          ConsoleDirectory: console
          ConsoleCredentials: creds.json
          Source: build
          Requests: 2
          Tag: "#Deployed"
`
	g, err := Parse([]byte(src), "/work")
	require.NoError(t, err)
	require.Len(t, g.Steps, 1)
	assert.Equal(t, []string{"#Deployed"}, g.Steps[0].Task.FindProducedTagNames())

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf))
	assert.Contains(t, buf.String(), `<Node Name="Deploy">`)
	assert.Contains(t, buf.String(), `<SolstaDeploy BuildToolsDirectory="sdk"`)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.yml")
	require.NoError(t, os.WriteFile(path, []byte(chain), 0644))
	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, g.BaseDir)

	_, err = Load(filepath.Join(dir, "nope.yml"))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	g, err := Parse([]byte(chain), "/work")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf))
	assert.Equal(t, strings.TrimSpace(`
<BuildGraph>
  <Node Name="Build">
    <Fake Output="game.pak"></Fake>
  </Node>
  <Node Name="Deploy">
    <Fake Output="creds.json"></Fake>
  </Node>
</BuildGraph>`), buf.String())
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	g, err := Parse([]byte(chain), dir)
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	history := store.NewHistory(store.NewMemoryStore())
	r := NewRunner(logger, history)

	ctx, cancel := context.WithCancel(context.TODO())
	events := r.Pubsub.Subscribe(ctx)
	actions := make([]string, 0)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for evt := range events {
			actions = append(actions, evt.Node+":"+evt.Action)
		}
	}()

	tags, err := r.Run(context.TODO(), g)
	require.NoError(t, err)
	cancel()
	wg.Wait()

	pak := task.NewFileReference(dir, "game.pak")
	creds := task.NewFileReference(dir, "creds.json")
	assert.Equal(t, []task.FileReference{pak}, tags["#Built"].Sorted())
	assert.Equal(t, []task.FileReference{creds}, tags["#Deployed"].Sorted())
	assert.True(t, g.Steps[1].Task.(*fakeTask).seen.Contains(pak))

	assert.Equal(t, []string{"Build:Running", "Build:Done", "Deploy:Running", "Deploy:Done"}, actions)

	records, err := history.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, task.Done, record.Status)
		assert.Len(t, record.Products, 1)
	}
}

func TestRunFailure(t *testing.T) {
	src := `
nodes:
  - name: Build
    tasks:
      - element: Fake
        parameters:
          Output: game.pak
          Fail: true
          Tag: "#Built"
  - name: Deploy
    tasks:
      - element: Fake
        parameters:
          Output: creds.json
`
	g, err := Parse([]byte(src), t.TempDir())
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	history := store.NewHistory(store.NewMemoryStore())
	r := NewRunner(logger, history)

	tags, err := r.Run(context.TODO(), g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node Build")
	assert.Contains(t, err.Error(), "boom")
	assert.Len(t, tags, 0)

	records, err := history.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, task.Error, records[0].Status)
	assert.Equal(t, "boom", records[0].Error)
	assert.Len(t, records[0].Products, 0)
}

func TestRunCanceled(t *testing.T) {
	g, err := Parse([]byte(chain), t.TempDir())
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	r := &Runner{Log: logger}
	ctx, cancel := context.WithCancel(context.TODO())
	cancel()
	_, err = r.Run(ctx, g)
	assert.Equal(t, context.Canceled, err)
}

func TestEvents(t *testing.T) {
	r := NewRunner(nil, nil)
	assert.NotNil(t, r.Log)
	assert.IsType(t, &pubsub.PubSub{}, r.Pubsub)
}
