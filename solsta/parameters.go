package solsta

import (
	"github.com/factorysh/solsta/filespec"
	"github.com/factorysh/solsta/task"
)

// Parameters of a SolstaDeploy task.
type Parameters struct {
	// Directory of the Solsta SDK, holding release_deploy
	BuildToolsDirectory string `yaml:"BuildToolsDirectory" xml:"BuildToolsDirectory,attr,omitempty"`
	// Directory of the Solsta console tools
	ConsoleDirectory string `yaml:"ConsoleDirectory" xml:"ConsoleDirectory,attr,omitempty"`
	// JSON file with the Solsta credentials
	ConsoleCredentials string `yaml:"ConsoleCredentials" xml:"ConsoleCredentials,attr,omitempty"`
	// Directory to deploy
	Source string `yaml:"Source" xml:"Source,attr,omitempty"`
	// Given by Solsta support to stabilize data upload
	Requests *int `yaml:"Requests" xml:"Requests,attr,omitempty"`

	// Manifest names
	ProductName    string `yaml:"ProductName" xml:"ProductName,attr,omitempty"`
	EnvName        string `yaml:"EnvName" xml:"EnvName,attr,omitempty"`
	RepositoryName string `yaml:"RepositoryName" xml:"RepositoryName,attr,omitempty"`

	// Information about this release, such as an internal version number
	Version        string `yaml:"Version" xml:"Version,attr,omitempty"`
	SyncAttributes bool   `yaml:"SyncAttributes" xml:"SyncAttributes,attr,omitempty"`
	SyncTimestamps bool   `yaml:"SyncTimestamps" xml:"SyncTimestamps,attr,omitempty"`
	// Files to exclude, relative to Source. Allows * and ! negation.
	Exclude string `yaml:"Exclude" xml:"Exclude,attr,omitempty"`
	// Create product/env/repository if the name is not in the Manifest
	AutoCreate   bool `yaml:"AutoCreate" xml:"AutoCreate,attr,omitempty"`
	ConfigPrint  bool `yaml:"ConfigPrint" xml:"ConfigPrint,attr,omitempty"`
	Debug        bool `yaml:"Debug" xml:"Debug,attr,omitempty"`
	DebugNetwork bool `yaml:"DebugNetwork" xml:"DebugNetwork,attr,omitempty"`
	// Log file written by the tool, in addition to stdout
	LogPath string `yaml:"LogPath" xml:"LogPath,attr,omitempty"`

	// Manifest ids, derived from the names by the tool when missing
	ProductId    string `yaml:"ProductId" xml:"ProductId,attr,omitempty"`
	EnvId        string `yaml:"EnvId" xml:"EnvId,attr,omitempty"`
	RepositoryId string `yaml:"RepositoryId" xml:"RepositoryId,attr,omitempty"`
	// Maps to repository_id
	Repository      string `yaml:"Repository" xml:"Repository,attr,omitempty"`
	BaseUrl         string `yaml:"BaseUrl" xml:"BaseUrl,attr,omitempty"`
	BaseUrlMetafile string `yaml:"BaseUrlMetafile" xml:"BaseUrlMetafile,attr,omitempty"`
	SyncDirectory   string `yaml:"SyncDirectory" xml:"SyncDirectory,attr,omitempty"`
	AliasName       string `yaml:"AliasName" xml:"AliasName,attr,omitempty"`
	Description     string `yaml:"Description" xml:"Description,attr,omitempty"`
	// Files to include, all others are ignored. Relative to Source.
	Include         string `yaml:"Include" xml:"Include,attr,omitempty"`
	ExecutableFiles string `yaml:"ExecutableFiles" xml:"ExecutableFiles,attr,omitempty"`
	HiddenFiles     string `yaml:"HiddenFiles" xml:"HiddenFiles,attr,omitempty"`
	ReadOnlyFiles   string `yaml:"ReadOnlyFiles" xml:"ReadOnlyFiles,attr,omitempty"`
	Gzip            bool   `yaml:"Gzip" xml:"Gzip,attr,omitempty"`
	// Promote the release to the target env, the tool default is true
	Promote *bool `yaml:"Promote" xml:"Promote,attr,omitempty"`

	// Files printed before the deployment
	Files string `yaml:"Files" xml:"Files,attr,omitempty"`
	// Tags applied to the build products of the task
	Tag string `yaml:"Tag" xml:"Tag,attr,omitempty"`
}

// Validate lists the missing required parameters and malformed ones
func (p *Parameters) Validate() []error {
	errs := make([]error, 0)
	for _, required := range []struct {
		name  string
		value string
	}{
		{"BuildToolsDirectory", p.BuildToolsDirectory},
		{"ConsoleDirectory", p.ConsoleDirectory},
		{"ConsoleCredentials", p.ConsoleCredentials},
		{"Source", p.Source},
	} {
		if required.value == "" {
			errs = append(errs, task.MissingParameter(required.name))
		}
	}
	if p.Requests == nil {
		errs = append(errs, task.MissingParameter("Requests"))
	}
	errs = append(errs, filespec.ValidateTagList(p.Tag)...)
	return errs
}

// resolve returns a copy where every path is absolute, relative to base
func (p Parameters) resolve(base string) Parameters {
	for _, path := range []*string{
		&p.BuildToolsDirectory,
		&p.ConsoleDirectory,
		&p.ConsoleCredentials,
		&p.Source,
		&p.LogPath,
	} {
		if *path != "" {
			*path = task.NewFileReference(base, *path).String()
		}
	}
	return p
}
