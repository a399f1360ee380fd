package main

import (
	"fmt"
	"os"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/dataset/csv"
	"github.com/mrcluk/sprig/dataset/sqlset"
	"github.com/mrcluk/sprig/feature/yaml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	metadataInput string
	setOutput     string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Copy sets of data",
		Long:  `Copy a set of events between CSV files and SQL databases`,
		Run: func(cmd *cobra.Command, args []string) {
			err := bindFlags(config.v, cmd.Flags(), tableKey)
			if err != nil {
				config.fail(1, err)
			}
			md, err := readMetadata(config.metadataInput)
			if err != nil {
				config.fail(2, err)
			}
			table := config.v.GetString(tableKey)
			events, err := config.readEvents(config.setInput, table, md.Schema, md.Outcome)
			if err != nil {
				config.fail(3, fmt.Errorf("reading input set: %w", err))
			}
			n, err := config.writeEvents(md, table, events)
			if err != nil {
				config.fail(4, fmt.Errorf("writing output set: %w", err))
			}
			config.log.WithFields(logrus.Fields{"events": n, "output": config.setOutput}).Info("set copied")
		},
	}
	cmd.Flags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and outcome of the set (required)")
	cmd.Flags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL to dump the output set (defaults to STDOUT in CSV)")
	cmd.Flags().String(tableKey, "events", "table with the events for database inputs and outputs")
	return cmd
}

func (scc *setCmdConfig) writeEvents(md *yaml.Metadata, table string, events []dataset.Event) (int, error) {
	outcome := md.Outcome
	if outcome == "" {
		outcome = "outcome"
	}
	if sqlset.IsDatabase(scc.setOutput) {
		db, err := sqlset.Open(scc.setOutput)
		if err != nil {
			return 0, err
		}
		defer db.Close()
		return sqlset.WriteEvents(scc.Context(), db, table, md.Schema, outcome, events)
	}
	f := os.Stdout
	if scc.setOutput != "" {
		var err error
		f, err = os.Create(scc.setOutput)
		if err != nil {
			return 0, err
		}
		defer f.Close()
	}
	w, err := csv.NewWriter(f, md.Schema, outcome)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(scc.Context(), events)
	if err != nil {
		return n, err
	}
	return n, w.Flush()
}
