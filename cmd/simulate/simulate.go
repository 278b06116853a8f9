package simulate

import (
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/humidistat/humidistat/internal"
	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/control_loop"
	"github.com/humidistat/humidistat/internal/persistence"
	"github.com/humidistat/humidistat/internal/simulation"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/spf13/cobra"
)

var (
	setpoint int
	duration time.Duration
	cascade  bool
	width    int
)

var Command = &cobra.Command{
	Use:   "simulate",
	Short: "Run the controller against the simulated chamber and plot the result",
	Long: `Runs the controller in automatic mode against the simulated chamber
using the stored settings, without touching any hardware, and plots the
humidity and valve outputs over time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration.ReadConfigFile()
		config := configuration.CurrentConfig

		snapshot, _ := persistence.NewStore(config.DbPath).Load()
		mode := config.Mode
		if cascade {
			mode = configuration.ModeCascade
		}
		h := internal.NewHumidistat(mode, snapshot)
		chamber := internal.NewChamber(config.Simulation)

		result := Simulate(h, chamber, setpoint, duration)
		if len(result.Humidity) == 0 {
			return fmt.Errorf("duration %v is shorter than the sample interval %v", duration, h.SampleInterval())
		}

		ui.Printfln(asciigraph.Plot(result.Humidity,
			asciigraph.Height(15),
			asciigraph.Width(width),
			asciigraph.Caption(fmt.Sprintf("Humidity [%%] over %v, setpoint %d%%", duration, setpoint)),
		))
		ui.Printfln("")
		ui.Printfln(asciigraph.PlotMany([][]float64{result.HumidValve, result.DryValve},
			asciigraph.Height(10),
			asciigraph.Width(width),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption("Valve outputs (humid: blue, dry: red)"),
		))
		ui.Printfln("Final humidity: %.2f%%", result.Humidity[len(result.Humidity)-1])
		return nil
	},
}

func init() {
	Command.Flags().IntVarP(&setpoint, "setpoint", "s", control_loop.DefaultSetpoint, "Humidity setpoint in percent")
	Command.Flags().DurationVarP(&duration, "duration", "d", 10*time.Minute, "Simulated time")
	Command.Flags().BoolVarP(&cascade, "cascade", "", false, "Simulate the cascade controller regardless of the configured mode")
	Command.Flags().IntVarP(&width, "width", "w", 80, "Plot width")
}

type Result struct {
	Humidity   []float64
	HumidValve []float64
	DryValve   []float64
}

// Simulate runs h in automatic mode against chamber on a virtual clock, one entry per control step
func Simulate(h control_loop.Humidistat, chamber *simulation.Chamber, setpoint int, duration time.Duration) Result {
	now := time.Unix(0, 0)
	chamber.SetClock(func() time.Time { return now })

	if !h.Active() {
		h.ToggleMode()
	}
	h.AdjustSetpoint(setpoint - int(h.Setpoint()))

	var result Result
	step := h.SampleInterval()
	if step <= 0 {
		return result
	}
	for elapsed := time.Duration(0); elapsed+step <= duration; elapsed += step {
		h.Sample(chamber.Humidity())
		if c, ok := h.(*control_loop.Cascade); ok {
			c.SampleFlows(chamber.WetFlow(), chamber.DryFlow())
		}
		h.Step()

		humid, dry := h.ValveOutputs()
		chamber.SetValve(simulation.ValveHumid, humid)
		chamber.SetValve(simulation.ValveDry, dry)

		result.Humidity = append(result.Humidity, chamber.Humidity())
		result.HumidValve = append(result.HumidValve, float64(humid))
		result.DryValve = append(result.DryValve, float64(dry))

		now = now.Add(step)
	}
	return result
}
