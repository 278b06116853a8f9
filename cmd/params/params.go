package params

import (
	"bytes"
	"fmt"

	"github.com/humidistat/humidistat/cmd/global"
	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/params"
	"github.com/humidistat/humidistat/internal/persistence"
	"github.com/humidistat/humidistat/internal/settings"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var cascade bool

var Command = &cobra.Command{
	Use:   "params",
	Short: "Tunable parameter related commands",
	Long:  ``,
	Args:  cobra.NoArgs,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the tunable parameters as shown on the config tab",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration.ReadConfigFile()
		config := configuration.CurrentConfig

		store := persistence.NewStore(config.DbPath)
		snapshot, _ := store.Load()
		parameters := settings.Bind(&snapshot, cascade || config.Mode.IsCascade())

		var buf bytes.Buffer
		if err := Table(parameters).WriteTable(&buf, global.TableConfig()); err != nil {
			return err
		}
		ui.Printfln(buf.String())
		return nil
	},
}

// Table lists label, kind, value and rendered line of each parameter
func Table(parameters []params.Parameter) table.Table {
	var rows [][]string
	for i, p := range parameters {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i), p.Label(), p.Kind().String(), p.RenderValue(), p.Render(),
		})
	}
	return table.Table{
		Headers: []string{"#", "Label", "Type", "Value", "Display"},
		Rows:    rows,
	}
}

func init() {
	listCmd.Flags().BoolVarP(&cascade, "cascade", "", false, "List the cascade parameters regardless of the configured mode")
	Command.AddCommand(listCmd)
}
