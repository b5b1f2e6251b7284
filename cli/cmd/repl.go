package cmd

import (
	"context"

	"github.com/ardnew/jsone/cli/cmd/repl"
	"github.com/ardnew/jsone/log"
	"github.com/ardnew/jsone/pkg"
)

// Repl starts an interactive session.
type Repl struct {
	Context []string `help:"YAML or JSON file of context bindings, or '-' for stdin" placeholder:"FILE" short:"c"`
	History string   `help:"History file"                                            default:"${history}" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	vars, err := loadContext(ctx, r.Context)
	if err != nil {
		return err
	}

	path := r.History
	if path == "" {
		path = pkg.CachePath(repl.BaseHistory)
	}

	return repl.Run(ctx, vars, repl.NewHistory(path), log.Default())
}
