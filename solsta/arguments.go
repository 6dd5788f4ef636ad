package solsta

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Arguments of a release_deploy command line, --key=value or --flag
type Arguments []string

// String is the command line, as logged
func (a Arguments) String() string {
	return strings.Join(a, " ")
}

// quotedKeys are the options whose value is quoted on the command line
var quotedKeys = map[string]bool{
	"exclude": true,
	"include": true,
}

// Argv is the argument vector handed to the process: the values of the
// quoted options are unquoted, like a command line parser would do.
func (a Arguments) Argv() []string {
	argv := make([]string, len(a))
	for i, arg := range a {
		argv[i] = arg
		eq := strings.Index(arg, "=")
		if eq < 0 || !quotedKeys[strings.TrimPrefix(arg[:eq], "--")] {
			continue
		}
		value := arg[eq+1:]
		if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
			argv[i] = arg[:eq+1] + value[1:len(value)-1]
		}
	}
	return argv
}

func option(key, value string) string {
	return fmt.Sprintf("--%s=%s", key, value)
}

func quoted(key, value string) string {
	return fmt.Sprintf(`--%s="%s"`, key, value)
}

func flag(key string) string {
	return "--" + key
}

// SourcePath ends with exactly one path separator
func SourcePath(source string) string {
	return strings.TrimRight(source, string(os.PathSeparator)) + string(os.PathSeparator)
}

// Arguments projects the parameters on the release_deploy options. Required
// options come first, in a fixed order, then the options which are set.
func (p Parameters) Arguments() Arguments {
	requests := 0
	if p.Requests != nil {
		requests = *p.Requests
	}
	args := Arguments{
		option("console_directory", p.ConsoleDirectory),
		option("console_credentials", p.ConsoleCredentials),
		option("product_name", p.ProductName),
		option("env_name", p.EnvName),
		option("repository_name", p.RepositoryName),
		option("source", SourcePath(p.Source)),
		option("requests", strconv.Itoa(requests)),
	}

	optionals := []struct {
		set bool
		arg func() string
	}{
		{p.Version != "", func() string { return option("version", p.Version) }},
		{p.SyncAttributes, func() string { return flag("sync_attributes") }},
		{p.SyncTimestamps, func() string { return flag("sync_timestamps") }},
		{p.Exclude != "", func() string { return quoted("exclude", p.Exclude) }},
		{p.AutoCreate, func() string { return flag("autocreate") }},
		{p.ConfigPrint, func() string { return flag("config_print") }},
		{p.Debug, func() string { return flag("debug") }},
		{p.DebugNetwork, func() string { return flag("debug_network") }},
		{p.LogPath != "", func() string { return option("log_path", p.LogPath) }},
		{p.ProductId != "", func() string { return option("product_id", p.ProductId) }},
		{p.EnvId != "", func() string { return option("env_id", p.EnvId) }},
		{p.RepositoryId != "", func() string { return option("repository_id", p.RepositoryId) }},
		{p.Repository != "", func() string { return option("repository", p.Repository) }},
		{p.BaseUrl != "", func() string { return option("base_url", p.BaseUrl) }},
		{p.BaseUrlMetafile != "", func() string { return option("base_url_metafile", p.BaseUrlMetafile) }},
		{p.SyncDirectory != "", func() string { return option("sync_directory", p.SyncDirectory) }},
		{p.AliasName != "", func() string { return option("alias", p.AliasName) }},
		{p.Description != "", func() string { return option("description", p.Description) }},
		{p.Include != "", func() string { return quoted("include", p.Include) }},
		{p.ExecutableFiles != "", func() string { return option("executable_files", p.ExecutableFiles) }},
		{p.HiddenFiles != "", func() string { return option("hidden_files", p.HiddenFiles) }},
		{p.ReadOnlyFiles != "", func() string { return option("read_only_files", p.ReadOnlyFiles) }},
		{p.Gzip, func() string { return flag("gzip") }},
		{p.Promote != nil, func() string { return option("promote", strconv.FormatBool(*p.Promote)) }},
	}
	for _, o := range optionals {
		if o.set {
			args = append(args, o.arg())
		}
	}
	return args
}
