package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/stitts-dev/lineupgen/internal/optimizer"
	"github.com/stitts-dev/lineupgen/internal/report"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available roster presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writePresets(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func writePresets(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Preset", "Slots", "Salary cap", "Default floor", "Roster"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, name := range optimizer.PresetNames() {
		template, err := optimizer.GetTemplate(name)
		if err != nil {
			return err
		}
		table.Append([]string{
			name,
			strconv.Itoa(len(template.Slots)),
			report.FormatSalary(template.SalaryCap),
			report.FormatSalary(template.SalaryFloor),
			strings.Join(template.SlotCodes(), " "),
		})
	}
	table.Render()
	return nil
}
