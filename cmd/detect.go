package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/humidistat/humidistat/cmd/global"
	"github.com/humidistat/humidistat/internal/hwmon"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect temperature sensors",
	Long:  `Detects all hwmon temperature sensors usable as thermistor or temperature inputs and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		controllers := hwmon.GetChips()
		tableConfig := global.TableConfig()

		for _, controller := range controllers {
			if len(controller.Name) <= 0 || len(controller.Sensors) <= 0 {
				continue
			}

			ui.Printfln("> %s (platform: %s)", controller.Name, controller.Platform)

			var sensorRows [][]string
			for _, sensor := range controller.Sensors {
				value, err := sensor.GetValue()
				valueText := "N/A"
				if err == nil {
					valueText = strconv.FormatFloat(value, 'f', 1, 64)
				}

				_, file := filepath.Split(sensor.Input)
				labelAndFile := fmt.Sprintf("%s (%s)", sensor.Label, file)

				sensorRows = append(sensorRows, []string{
					"", strconv.Itoa(sensor.Index), labelAndFile, valueText,
				})
			}

			sensorTable := table.Table{
				Headers: []string{"Sensors", "Index", "Label", "Value"},
				Rows:    sensorRows,
			}

			var buf bytes.Buffer
			if err := sensorTable.WriteTable(&buf, tableConfig); err != nil {
				ui.Fatal("Error printing table: %v", err)
			}
			ui.Printfln(buf.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
