package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput string
	treeID    string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a tree",
		Long:  `Show the structure of a decision tree`,
		Run: func(cmd *cobra.Command, args []string) {
			err := bindFlags(config.v, cmd.Flags(), redisAddrKey, redisKeyKey)
			if err != nil {
				config.fail(1, err)
			}
			t, err := config.treeFrom(config.treeInput, config.treeID)
			if err != nil {
				config.fail(2, err)
			}
			config.log.WithFields(logrus.Fields{"depth": t.Depth(), "leaves": t.Leaves()}).Debug("tree loaded")
			fmt.Print(t)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to show will be read and parsed as JSON")
	cmd.Flags().StringVar(&(config.treeID), "tree-id", "", "ID of the tree to show in the redis store")
	cmd.Flags().String(redisAddrKey, "", "address of the redis server with the tree")
	cmd.Flags().String(redisKeyKey, "sprig", "prefix for the keys of trees stored in redis")
	return cmd
}
