package main

import (
	"fmt"

	"github.com/mrcluk/sprig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	output        string
	classFeature  string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a set of labeled events to predict their outcome.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := bindFlags(config.v, cmd.Flags(), minSamplesKey, maxDepthKey, parallelKey, redisAddrKey, redisKeyKey, tableKey)
			if err != nil {
				config.fail(1, err)
			}
			md, err := readMetadata(config.metadataInput)
			if err != nil {
				config.fail(2, err)
			}
			outcome := md.Outcome
			if config.classFeature != "" {
				outcome = config.classFeature
			}
			events, err := config.readEvents(config.dataInput, config.v.GetString(tableKey), md.Schema, outcome)
			if err != nil {
				config.fail(3, fmt.Errorf("reading training set: %w", err))
			}
			c := trainingConfig(config.v)
			if err = c.Validate(); err != nil {
				config.fail(4, err)
			}
			c.Logger = config.log
			config.log.WithFields(logrus.Fields{
				"events":      len(events),
				"features":    md.Schema.Len(),
				"min_samples": c.MinSamples,
				"max_depth":   c.MaxDepth,
				"parallel":    c.Parallel,
			}).Info("growing tree")
			t, err := sprig.Train(config.Context(), md.Schema, events, c)
			if err != nil {
				config.fail(5, fmt.Errorf("growing the tree: %w", err))
			}
			config.log.WithFields(logrus.Fields{"depth": t.Depth(), "leaves": t.Leaves()}).Info("tree grown")
			config.log.Debugf("\n%v", t)
			if addr := config.v.GetString(redisAddrKey); addr != "" {
				store, rc := redisStore(addr, config.v.GetString(redisKeyKey))
				id, err := store.Create(config.Context(), t)
				rc.Close()
				if err != nil {
					config.fail(6, fmt.Errorf("storing tree in redis: %w", err))
				}
				config.log.WithFields(logrus.Fields{"redis": addr, "id": id}).Info("tree stored")
			}
			err = outputTree(config.Context(), config.output, t)
			if err != nil {
				config.fail(7, err)
			}
		},
	}
	defaults := sprig.DefaultConfig()
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features available on the input (required)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the column with the outcome the tree should predict (defaults to the metadata outcome)")
	cmd.Flags().Int(minSamplesKey, defaults.MinSamples, "minimum number of events required to split a node")
	cmd.Flags().Int(maxDepthKey, defaults.MaxDepth, "maximum depth of the tree")
	cmd.Flags().Bool(parallelKey, false, "grow the subtrees of every node concurrently")
	cmd.Flags().String(redisAddrKey, "", "address of a redis server where the grown tree will also be stored")
	cmd.Flags().String(redisKeyKey, "sprig", "prefix for the keys of trees stored in redis")
	cmd.Flags().String(tableKey, "events", "table with the events when the input is a database")
	return cmd
}
