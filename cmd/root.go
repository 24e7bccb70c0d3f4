package cmd

type Context struct {
	Debug bool
}

var CLI struct {
	Debug bool `help:"Enable debug mode"`

	Serve   ServeCmd   `cmd:"" default:"1"                    help:"Run the API server"`
	Migrate MigrateCmd `cmd:"" help:"Run database migrations"`
	Import  ImportCmd  `cmd:"" help:"Import a legacy beer dump"`
}
