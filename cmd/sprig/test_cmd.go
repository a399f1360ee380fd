package main

import (
	"fmt"

	"github.com/mrcluk/sprig/feature/yaml"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	treeID        string
	dataInput     string
	metadataInput string
	classFeature  string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := bindFlags(config.v, cmd.Flags(), redisAddrKey, redisKeyKey, tableKey)
			if err != nil {
				config.fail(1, err)
			}
			t, err := config.treeFrom(config.treeInput, config.treeID)
			if err != nil {
				config.fail(2, err)
			}
			outcome := config.classFeature
			if config.metadataInput != "" {
				md, err := yaml.ReadMetadataFromFile(config.metadataInput)
				if err != nil {
					config.fail(3, err)
				}
				if outcome == "" {
					outcome = md.Outcome
				}
			}
			events, err := config.readEvents(config.dataInput, config.v.GetString(tableKey), t.Schema, outcome)
			if err != nil {
				config.fail(4, fmt.Errorf("reading testing set: %w", err))
			}
			config.log.WithField("events", len(events)).Info("testing tree")
			successRate, errorCount, err := t.Test(config.Context(), events)
			if err != nil {
				config.fail(5, fmt.Errorf("testing tree: %w", err))
			}
			fmt.Printf("%f success rate, failed to make a prediction for %d events\n", successRate, errorCount)
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL with data to test the tree with (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata naming the outcome column of the input")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON")
	cmd.Flags().StringVar(&(config.treeID), "tree-id", "", "ID of the tree to test in the redis store")
	cmd.Flags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the column with the outcome of the events (defaults to the metadata outcome or the last CSV column)")
	cmd.Flags().String(redisAddrKey, "", "address of the redis server with the tree")
	cmd.Flags().String(redisKeyKey, "sprig", "prefix for the keys of trees stored in redis")
	cmd.Flags().String(tableKey, "events", "table with the events when the input is a database")
	return cmd
}
