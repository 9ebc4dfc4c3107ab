package main

import (
	"fmt"

	"github.com/quillcli/quill/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List directory contents",
	Long: `List a directory's contents in a table. Lists the current
directory when no path is given. The directory is read directly; the
agent is not involved.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ops, err := initOps()
		if err != nil {
			fail(err)
		}

		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		res := ops.List(path)
		if !res.Success {
			fail(fmt.Errorf("%s", res.Message))
		}
		fmt.Println(ui.RenderList(res))
	},
}
