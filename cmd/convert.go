package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/KenGondor/CS2030/sim"
)

var (
	convertName    string
	convertVersion string
)

var convertCmd = &cobra.Command{
	Use:   "convert [input-file | -]",
	Short: "Convert an input record to a facilities YAML file",
	Long: "Read the ten-value input record and write a facilities YAML file holding it as a\n" +
		"single named facility. Output is written to stdout for piping into --config.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := readRecordArg(args[0], cmd.InOrStdin())
		if err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid record: %v", err)
		}
		f := &FacilityFile{Version: convertVersion, Default: convertName}
		f.Facilities = map[string]sim.Config{convertName: cfg}
		if err := writeFacilityFile(cmd.OutOrStdout(), f); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// writeFacilityFile marshals f to YAML and writes it to w.
func writeFacilityFile(w io.Writer, f *FacilityFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func init() {
	convertCmd.Flags().StringVar(&convertName, "name", "default", "Facility name to store the record under")
	convertCmd.Flags().StringVar(&convertVersion, "version", "1", "Facility file version")

	rootCmd.AddCommand(convertCmd)
}
