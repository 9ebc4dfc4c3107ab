package main

import (
	"fmt"

	"github.com/quillcli/quill/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Display file contents",
	Long: `Display a file's contents together with its metadata. The file
is read directly; the agent is not involved.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ops, err := initOps()
		if err != nil {
			fail(err)
		}

		res := ops.Show(args[0])
		if !res.Success {
			fail(fmt.Errorf("%s", res.Message))
		}
		fmt.Println(ui.RenderShow(res))
	},
}
