package main

import (
	"github.com/sandevgo/chatpruner/internal/service/pruner"
	"github.com/spf13/cobra"
)

// selectOptions are the snapshot and filter flags shared by list and prune.
type selectOptions struct {
	limit      int
	noWhispers bool
	noRolls    bool
	noSystem   bool
	query      string
	sequential bool
}

func (o *selectOptions) bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.IntVar(&o.limit, "limit", 0, "number of recent messages to load (default from config)")
	flags.BoolVar(&o.noWhispers, "no-whispers", false, "leave whispered messages alone")
	flags.BoolVar(&o.noRolls, "no-rolls", false, "leave dice rolls alone")
	flags.BoolVar(&o.noSystem, "no-system", false, "leave out-of-character and system messages alone")
	flags.StringVarP(&o.query, "query", "q", "", "only messages containing this text")
}

func (o *selectOptions) filter() pruner.Filter {
	return pruner.Filter{
		ExcludeWhispers: o.noWhispers,
		ExcludeRolls:    o.noRolls,
		ExcludeSystem:   o.noSystem,
		Query:           o.query,
	}
}
