package cmd

import (
	"fmt"
	"os"

	"github.com/humidistat/humidistat/cmd/config"
	"github.com/humidistat/humidistat/cmd/global"
	"github.com/humidistat/humidistat/cmd/params"
	"github.com/humidistat/humidistat/cmd/sensor"
	"github.com/humidistat/humidistat/cmd/simulate"
	"github.com/humidistat/humidistat/cmd/store"
	"github.com/humidistat/humidistat/internal"
	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "humidistat",
	Short: "A PID humidity controller driving a humid and a dry air valve.",
	Long: `humidistat regulates the relative humidity of a chamber by mixing
humid and dry air, either with a single PID loop or a cascade of a
humidity loop and two flow loops.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()
		printHeader()

		configPath := configuration.ReadConfigFile()
		err := configuration.Validate(configPath)
		if err != nil {
			ui.ErrorAndNotify("Config Validation Error", err.Error())
			return
		}

		internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/humidistat.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(params.Command)
	rootCmd.AddCommand(store.Command)
	rootCmd.AddCommand(sensor.Command)
	rootCmd.AddCommand(simulate.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("humidi", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("stat", pterm.NewStyle(pterm.FgWhite)),
	).Render()
	if err != nil {
		fmt.Println("humidistat")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
