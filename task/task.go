package task

import (
	"encoding/xml"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// FileReference is an absolute, cleaned path to a file
type FileReference string

// NewFileReference builds a reference from a path, relative paths are resolved against base
func NewFileReference(base, path string) FileReference {
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return FileReference(filepath.Clean(path))
}

func (f FileReference) String() string {
	return string(f)
}

// FileSet is a set of files
type FileSet map[FileReference]struct{}

// NewFileSet inits a set with some files
func NewFileSet(files ...FileReference) FileSet {
	fs := make(FileSet, len(files))
	for _, f := range files {
		fs.Add(f)
	}
	return fs
}

// Add a file to the set
func (fs FileSet) Add(f FileReference) {
	fs[f] = struct{}{}
}

// Contains tells if the file is in the set
func (fs FileSet) Contains(f FileReference) bool {
	_, ok := fs[f]
	return ok
}

// Union adds all the files of other to the set
func (fs FileSet) Union(other FileSet) {
	for f := range other {
		fs[f] = struct{}{}
	}
}

// Sorted returns the files ordered by path
func (fs FileSet) Sorted() []FileReference {
	files := make([]FileReference, 0, len(fs))
	for f := range fs {
		files = append(files, f)
	}
	sort.Slice(files, func(a, b int) bool {
		return files[a] < files[b]
	})
	return files
}

// TagMap maps a tag name (#Name) to the files it holds
type TagMap map[string]FileSet

// FindOrAdd returns the set of a tag, creating it if needed
func (tm TagMap) FindOrAdd(tag string) FileSet {
	fs, ok := tm[tag]
	if !ok {
		fs = NewFileSet()
		tm[tag] = fs
	}
	return fs
}

// JobContext describes the job running a task
type JobContext struct {
	Id      uuid.UUID       // Id
	WorkDir string          // Relative paths of the definition are resolved from here
	Log     log.FieldLogger // Log sink
}

// NewJobContext inits a job with a fresh id
func NewJobContext(workDir string, logger log.FieldLogger) *JobContext {
	if logger == nil {
		logger = log.StandardLogger()
	}
	id := uuid.New()
	return &JobContext{
		Id:      id,
		WorkDir: workDir,
		Log:     logger.WithField("job", id),
	}
}

// Task is a node of a build graph
type Task interface {
	// Execute the task. Build products are added to products, tags is read only.
	Execute(job *JobContext, products FileSet, tags TagMap) error
	// Write the task definition as XML
	Write(enc *xml.Encoder) error
	// FindConsumedTagNames lists the tags read by this task
	FindConsumedTagNames() []string
	// FindProducedTagNames lists the tags written by this task
	FindProducedTagNames() []string
}
