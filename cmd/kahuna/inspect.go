package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kahuna/rule"
	"github.com/katalvlaran/kahuna/space"
)

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the prototype set and the compiled rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			set, err := loadPrototypes(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			dirs := space.Directions()
			for _, id := range set.IDs() {
				p, _ := set.Get(id)
				fmt.Fprintf(w, "%s mesh=%s rot=%d weight=%d\n", id, p.MeshName, p.MeshRotation, p.Weight)
				for face, ids := range p.ValidNeighbors {
					fmt.Fprintf(w, "  %v: %s\n", dirs[face], strings.Join(ids, " "))
				}
			}

			r := set.Builder(rule.Uniform[cell]{}).Build()
			catchAll := 0
			for _, e := range r.Table() {
				if e.CatchAll {
					catchAll++
				}
			}
			fmt.Fprintf(w, "rule: %d states, %d offsets, %d catch-all\n", r.Len(), len(r.NeighborOffsets()), catchAll)

			return nil
		},
	}
}
