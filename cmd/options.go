package cmd

// Options is the root for the CLI. Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config string `short:"f" long:"config" description:"service configuration YAML/JSON path"`

	Serve        *ServeCmd        `command:"serve"         description:"Start MCP server exposing the registered AWS tools"`
	ListTools    *ListToolsCmd    `command:"list-tools"    description:"List all registered tools"`
	ListServices *ListServicesCmd `command:"list-services" description:"List tool services and their methods"`
	Service      *ServiceCmd      `command:"service"       description:"Show detailed info about one service method"`
	Tool         *ToolCmd         `command:"tool"          description:"Show detailed info about one MCP tool"`
	Exec         *ExecCmd         `command:"exec"          description:"Execute a registered tool"`
	AddClient    *AddClientCmd    `command:"add-client"    description:"Register external MCP endpoint and import its tools"`
}

// Init instantiates the sub-command referenced by the first positional
// argument so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{}
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "list-services":
		o.ListServices = &ListServicesCmd{}
	case "service":
		o.Service = &ServiceCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	case "exec":
		o.Exec = &ExecCmd{}
	case "add-client":
		o.AddClient = &AddClientCmd{}
	}
}
