package solsta

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func minimal() Parameters {
	return Parameters{
		BuildToolsDirectory: "/opt/solsta/sdk",
		ConsoleDirectory:    "/opt/solsta/console",
		ConsoleCredentials:  "/opt/solsta/creds.json",
		Source:              "/data/build",
		Requests:            intPtr(8),
		ProductName:         "game",
		EnvName:             "live",
		RepositoryName:      "win64",
	}
}

func TestArgumentsRequired(t *testing.T) {
	p := minimal()
	sep := string(filepath.Separator)
	assert.Equal(t, Arguments{
		"--console_directory=/opt/solsta/console",
		"--console_credentials=/opt/solsta/creds.json",
		"--product_name=game",
		"--env_name=live",
		"--repository_name=win64",
		"--source=/data/build" + sep,
		"--requests=8",
	}, p.Arguments())
}

func TestArgumentsDeterministic(t *testing.T) {
	p := minimal()
	p.Version = "1.2.3"
	p.Exclude = "*.pdb"
	p.Debug = true
	p.Promote = boolPtr(false)
	assert.Equal(t, p.Arguments(), p.Arguments())
	assert.Equal(t, p.Arguments().String(), p.Arguments().String())
}

func TestArgumentsOptional(t *testing.T) {
	tests := []struct {
		name   string
		set    func(p *Parameters)
		expect string
	}{
		{"version", func(p *Parameters) { p.Version = "1.2.3" }, "--version=1.2.3"},
		{"sync attributes", func(p *Parameters) { p.SyncAttributes = true }, "--sync_attributes"},
		{"sync timestamps", func(p *Parameters) { p.SyncTimestamps = true }, "--sync_timestamps"},
		{"exclude", func(p *Parameters) { p.Exclude = "*.pdb;!keep.pdb" }, `--exclude="*.pdb;!keep.pdb"`},
		{"autocreate", func(p *Parameters) { p.AutoCreate = true }, "--autocreate"},
		{"config print", func(p *Parameters) { p.ConfigPrint = true }, "--config_print"},
		{"debug", func(p *Parameters) { p.Debug = true }, "--debug"},
		{"debug network", func(p *Parameters) { p.DebugNetwork = true }, "--debug_network"},
		{"log path", func(p *Parameters) { p.LogPath = "/var/log/solsta.log" }, "--log_path=/var/log/solsta.log"},
		{"product id", func(p *Parameters) { p.ProductId = "p-1" }, "--product_id=p-1"},
		{"env id", func(p *Parameters) { p.EnvId = "e-1" }, "--env_id=e-1"},
		{"repository id", func(p *Parameters) { p.RepositoryId = "r1" }, "--repository_id=r1"},
		{"repository", func(p *Parameters) { p.Repository = "r2" }, "--repository=r2"},
		{"base url", func(p *Parameters) { p.BaseUrl = "https://cdn" }, "--base_url=https://cdn"},
		{"base url metafile", func(p *Parameters) { p.BaseUrlMetafile = "https://meta" }, "--base_url_metafile=https://meta"},
		{"sync directory", func(p *Parameters) { p.SyncDirectory = "/sync" }, "--sync_directory=/sync"},
		{"alias", func(p *Parameters) { p.AliasName = "latest" }, "--alias=latest"},
		{"description", func(p *Parameters) { p.Description = "nightly" }, "--description=nightly"},
		{"include", func(p *Parameters) { p.Include = "bin/*" }, `--include="bin/*"`},
		{"executable files", func(p *Parameters) { p.ExecutableFiles = "game" }, "--executable_files=game"},
		{"hidden files", func(p *Parameters) { p.HiddenFiles = ".cache" }, "--hidden_files=.cache"},
		{"read only files", func(p *Parameters) { p.ReadOnlyFiles = "data.pak" }, "--read_only_files=data.pak"},
		{"gzip", func(p *Parameters) { p.Gzip = true }, "--gzip"},
		{"promote", func(p *Parameters) { p.Promote = boolPtr(true) }, "--promote=true"},
		{"no promote", func(p *Parameters) { p.Promote = boolPtr(false) }, "--promote=false"},
	}

	base := minimal().Arguments()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := minimal()
			tt.set(&p)
			args := p.Arguments()
			assert.Equal(t, base, args[:7])
			assert.Equal(t, Arguments{tt.expect}, args[7:])
		})
	}
}

func TestArgumentsDebugFlags(t *testing.T) {
	p := minimal()
	p.Debug = false
	p.DebugNetwork = true
	args := p.Arguments()
	assert.Contains(t, args, "--debug_network")
	assert.NotContains(t, args, "--debug")
}

func TestArgumentsOrder(t *testing.T) {
	p := minimal()
	p.LogPath = "/var/log/solsta.log"
	p.Debug = true
	p.Version = "1.2.3"
	p.Exclude = "*.pdb"
	p.SyncTimestamps = true
	args := p.Arguments()
	assert.Equal(t, minimal().Arguments(), args[:7])
	assert.Equal(t, Arguments{
		"--version=1.2.3",
		"--sync_timestamps",
		`--exclude="*.pdb"`,
		"--debug",
		"--log_path=/var/log/solsta.log",
	}, args[7:])
}

func TestSourcePath(t *testing.T) {
	sep := string(filepath.Separator)
	build := filepath.FromSlash("/data/build")
	tests := map[string]struct {
		input  string
		expect string
	}{
		"no separator":   {input: build, expect: build + sep},
		"one separator":  {input: build + sep, expect: build + sep},
		"many separator": {input: build + sep + sep, expect: build + sep},
		"root":           {input: sep, expect: sep},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expect, SourcePath(tc.input))
			assert.Equal(t, tc.expect, SourcePath(SourcePath(tc.input)))
		})
	}
}

func TestArgv(t *testing.T) {
	args := Arguments{
		"--source=/data/build/",
		`--exclude="*.pdb"`,
		"--debug",
		`--description="`,
	}
	assert.Equal(t, `--source=/data/build/ --exclude="*.pdb" --debug --description="`, args.String())
	assert.Equal(t, []string{
		"--source=/data/build/",
		"--exclude=*.pdb",
		"--debug",
		`--description="`,
	}, args.Argv())
}

func TestArgvKeepsUserQuotes(t *testing.T) {
	p := minimal()
	p.Version = `"1.0"`
	p.Description = `"nightly"`
	p.Include = "bin/*"
	argv := p.Arguments().Argv()
	assert.Equal(t, []string{
		`--version="1.0"`,
		`--description="nightly"`,
		"--include=bin/*",
	}, argv[7:])
}
