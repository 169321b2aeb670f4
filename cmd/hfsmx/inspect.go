package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hfsmx/hfsmx"
	"github.com/hfsmx/hfsmx/preset"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the machine and state handle tables of a definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := preset.NewDecoder().LoadDefinition(args[0])
		if err != nil {
			return err
		}
		store, err := def.Build()
		if err != nil {
			return err
		}
		for mh, name := range store.MachineNames() {
			fmt.Printf("machine %d\t%s\n", mh, name)
			states, _ := store.StateNames(hfsmx.MachineHandle(mh))
			for sh, sname := range states {
				fmt.Printf("  state %d\t%s\n", sh, sname)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
