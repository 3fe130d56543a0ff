package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zenecs/zenecs/internal/ecs"
)

// inspectSummary is the yaml.v3-marshaled shape of ecs.ReadSummary's result;
// a thin field-renamed mirror so the on-disk key names read naturally as
// lowercase YAML rather than Go export-cased fields.
type inspectSummary struct {
	NextEntityID uint32              `yaml:"next_entity_id"`
	AliveCount   int                 `yaml:"alive_count"`
	FreeIDCount  int                 `yaml:"free_id_count"`
	Pools        []inspectPoolRecord `yaml:"pools"`
}

type inspectPoolRecord struct {
	StableID    string `yaml:"stable_id"`
	TypeName    string `yaml:"type_name"`
	EntityCount int    `yaml:"entity_count"`
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <snapshot-file>",
		Short: "Print a human-readable summary of a ZENSNAP1 snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("zenecs inspect: %w", err)
			}
			defer f.Close()

			summary, err := ecs.ReadSummary(f)
			if err != nil {
				return fmt.Errorf("zenecs inspect: %w", err)
			}

			out := inspectSummary{
				NextEntityID: uint32(summary.NextID),
				AliveCount:   summary.AliveCount,
				FreeIDCount:  summary.FreeIDCount,
			}
			for _, p := range summary.Pools {
				out.Pools = append(out.Pools, inspectPoolRecord{
					StableID:    p.StableID,
					TypeName:    p.TypeName,
					EntityCount: p.EntityCount,
				})
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(out)
		},
	}
}
