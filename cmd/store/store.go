package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/humidistat/humidistat/cmd/global"
	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/persistence"
	"github.com/humidistat/humidistat/internal/settings"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"gopkg.in/yaml.v3"
)

var Command = &cobra.Command{
	Use:   "store",
	Short: "Commands for the stored controller settings",
	Long:  ``,
	Args:  cobra.NoArgs,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored settings record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := Describe(openStore())
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := info.WriteTable(&buf, global.TableConfig()); err != nil {
			return err
		}
		ui.Printfln(buf.String())
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored settings, the compiled-in defaults are used on the next start",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openStore().Delete(); err != nil {
			return err
		}
		ui.Success("Stored settings deleted")
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the stored settings (or the defaults) to a yaml file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Export(openStore(), args[0]); err != nil {
			return err
		}
		ui.Success("Settings exported to %s", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store settings read from a yaml file, missing values are taken from the defaults",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Import(openStore(), args[0]); err != nil {
			return err
		}
		ui.Success("Settings imported from %s", args[0])
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
	Command.AddCommand(resetCmd)
	Command.AddCommand(exportCmd)
	Command.AddCommand(importCmd)
}

func openStore() *persistence.Store {
	configuration.ReadConfigFile()
	store := persistence.NewStore(configuration.CurrentConfig.DbPath)
	if err := store.Init(); err != nil {
		ui.Fatal("Unable to open settings store: %v", err)
	}
	return store
}

// Describe returns a table with the metadata and values of the stored record
func Describe(store *persistence.Store) (table.Table, error) {
	result := table.Table{
		Headers: []string{"Key", "Value"},
	}
	result.Rows = append(result.Rows, []string{"Path", store.Path()})
	if stat, err := os.Stat(store.Path()); err == nil {
		result.Rows = append(result.Rows, []string{"Size", humanize.Bytes(uint64(stat.Size()))})
	}

	record, err := store.LoadRecord()
	if errors.Is(err, persistence.ErrNoRecord) {
		result.Rows = append(result.Rows, []string{"Record", "none, defaults are used"})
		return result, nil
	}
	if err != nil {
		return result, err
	}

	state := "valid"
	snapshot, err := record.Snapshot()
	if err != nil {
		state = err.Error()
	}
	result.Rows = append(result.Rows,
		[]string{"Version", fmt.Sprintf("%d", record.Version)},
		[]string{"Checksum", fmt.Sprintf("%08x (%s)", record.Checksum, state)},
		[]string{"Saved", fmt.Sprintf("%s (%s)", record.Saved.Format("2006-01-02 15:04:05"), humanize.Time(record.Saved))},
	)
	if err != nil {
		return result, nil
	}
	for _, p := range settings.Bind(&snapshot, true) {
		result.Rows = append(result.Rows, []string{p.Label(), p.RenderValue()})
	}
	return result, nil
}

// Export writes the stored snapshot as yaml, falling back to the defaults
func Export(store settings.Store, path string) error {
	snapshot, _ := store.Load()
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// Import stores the snapshot of a yaml file written by Export
func Import(store settings.Store, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	snapshot, err := Decode(file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return store.Save(snapshot)
}

// Decode reads a yaml snapshot, values missing in the document keep their defaults
func Decode(r io.Reader) (settings.Snapshot, error) {
	snapshot := settings.Defaults()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&snapshot); err != nil && !errors.Is(err, io.EOF) {
		return snapshot, err
	}
	return snapshot, nil
}
