package main

import (
	"fmt"
	"strings"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput string
	treeID    string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict NAME=VALUE...",
		Short: "Predict the outcome of an event",
		Long:  `Use the loaded tree to predict the outcome of an event given the value of each of its features`,
		Run: func(cmd *cobra.Command, args []string) {
			err := bindFlags(config.v, cmd.Flags(), redisAddrKey, redisKeyKey)
			if err != nil {
				config.fail(1, err)
			}
			t, err := config.treeFrom(config.treeInput, config.treeID)
			if err != nil {
				config.fail(2, err)
			}
			e, err := parseEvent(t.Schema, args)
			if err != nil {
				config.fail(3, err)
			}
			v, err := t.Classify(e)
			if err != nil {
				config.fail(4, err)
			}
			if v.IsAbsent() {
				fmt.Println("No prediction available for the event")
				return
			}
			fmt.Printf("Predicted outcome is %v\n", v)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON")
	cmd.Flags().StringVar(&(config.treeID), "tree-id", "", "ID of the tree in the redis store")
	cmd.Flags().String(redisAddrKey, "", "address of the redis server with the tree")
	cmd.Flags().String(redisKeyKey, "sprig", "prefix for the keys of trees stored in redis")
	return cmd
}

// parseEvent builds an event from NAME=VALUE arguments, one for every
// dimension of the schema.
func parseEvent(s *feature.Schema, args []string) (dataset.Event, error) {
	raw := make(map[string]string, len(args))
	for _, a := range args {
		parts := strings.SplitN(a, "=", 2)
		if len(parts) != 2 {
			return dataset.Event{}, fmt.Errorf("invalid feature value %q, expected NAME=VALUE", a)
		}
		if _, ok := s.Index(parts[0]); !ok {
			return dataset.Event{}, fmt.Errorf("unknown feature %s", parts[0])
		}
		raw[parts[0]] = parts[1]
	}
	features := make([]feature.Feature, s.Len())
	for i, name := range s.Names() {
		v, ok := raw[name]
		if !ok {
			return dataset.Event{}, fmt.Errorf("missing value for feature %s", name)
		}
		f, err := s.Parse(i, v)
		if err != nil {
			return dataset.Event{}, err
		}
		features[i] = f
	}
	return dataset.NewEvent(features, feature.Value{}), nil
}
