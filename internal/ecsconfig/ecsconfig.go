// Package ecsconfig loads ecs.WorldConfig and ecs.KernelOptions overrides
// from an optional TOML file and the process environment, following the
// config-loading shape a config.go elsewhere in this lineage uses: a viper
// instance, SetDefault for every known key, SetEnvPrefix/AutomaticEnv for
// environment overrides, and typed accessors. Values absent from both file
// and environment fall back to §6.2's own defaults untouched, so a
// zero-configuration run behaves identically to constructing
// ecs.DefaultWorldConfig directly.
package ecsconfig

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/zenecs/zenecs/internal/ecs"
)

// envPrefix namespaces every environment override under ZENECS_, matching
// the same env-prefix convention used elsewhere in this lineage.
const envPrefix = "ZENECS"

// Settings is the resolved, typed result of loading a config file and
// environment overrides: a WorldConfig for the default world and a
// KernelOptions for the process-wide policy knobs.
type Settings struct {
	World  ecs.WorldConfig
	Kernel ecs.KernelOptions
}

// Load reads path (if non-empty) as a TOML document, layers environment
// overrides on top, and returns the resolved Settings. path may be empty,
// in which case only defaults and environment variables apply. Reading
// goes through viper's own TOML support; writing a resolved config back out
// (Dump, below) goes through toml.NewEncoder directly, the same encoder a
// formula-conversion command elsewhere in this lineage uses.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("ecsconfig: reading %s: %w", path, err)
		}
	}

	return Settings{
		World:  worldConfigFrom(v),
		Kernel: kernelOptionsFrom(v),
	}, nil
}

func setDefaults(v *viper.Viper) {
	d := ecs.DefaultWorldConfig()
	v.SetDefault("world.initial_entity_capacity", d.InitialEntityCapacity)
	v.SetDefault("world.initial_pool_buckets", d.InitialPoolBuckets)
	v.SetDefault("world.initial_free_id_capacity", d.InitialFreeIDCapacity)
	v.SetDefault("world.growth_policy", "doubling")
	v.SetDefault("world.growth_step", d.GrowthStep)

	v.SetDefault("kernel.write_failure_policy", "throw")
}

func worldConfigFrom(v *viper.Viper) ecs.WorldConfig {
	cfg := ecs.WorldConfig{
		InitialEntityCapacity: v.GetInt("world.initial_entity_capacity"),
		InitialPoolBuckets:    v.GetInt("world.initial_pool_buckets"),
		InitialFreeIDCapacity: v.GetInt("world.initial_free_id_capacity"),
		GrowthPolicy:          parseGrowthPolicy(v.GetString("world.growth_policy")),
		GrowthStep:            v.GetInt("world.growth_step"),
	}
	return cfg
}

func kernelOptionsFrom(v *viper.Viper) ecs.KernelOptions {
	return ecs.KernelOptions{
		WriteFailurePolicy: parseWriteFailurePolicy(v.GetString("kernel.write_failure_policy")),
	}
}

func parseGrowthPolicy(s string) ecs.GrowthPolicy {
	switch strings.ToLower(s) {
	case "step":
		return ecs.GrowthStep
	default:
		return ecs.GrowthDoubling
	}
}

func parseWriteFailurePolicy(s string) ecs.WriteFailurePolicy {
	switch strings.ToLower(s) {
	case "log":
		return ecs.Log
	case "ignore":
		return ecs.Ignore
	default:
		return ecs.Throw
	}
}

// tomlDocument mirrors the dotted keys setDefaults/worldConfigFrom read,
// in the nested-table shape TOML renders them as.
type tomlDocument struct {
	World  tomlWorld  `toml:"world"`
	Kernel tomlKernel `toml:"kernel"`
}

type tomlWorld struct {
	InitialEntityCapacity int    `toml:"initial_entity_capacity"`
	InitialPoolBuckets    int    `toml:"initial_pool_buckets"`
	InitialFreeIDCapacity int    `toml:"initial_free_id_capacity"`
	GrowthPolicy          string `toml:"growth_policy"`
	GrowthStep            int    `toml:"growth_step"`
}

type tomlKernel struct {
	WriteFailurePolicy string `toml:"write_failure_policy"`
}

// Dump renders s as a TOML document suitable for use as a Load input file,
// so a resolved, environment-overridden configuration can be written back
// to disk and read again. No zenecs subcommand calls it.
func Dump(s Settings, w io.Writer) error {
	doc := tomlDocument{
		World: tomlWorld{
			InitialEntityCapacity: s.World.InitialEntityCapacity,
			InitialPoolBuckets:    s.World.InitialPoolBuckets,
			InitialFreeIDCapacity: s.World.InitialFreeIDCapacity,
			GrowthPolicy:          growthPolicyString(s.World.GrowthPolicy),
			GrowthStep:            s.World.GrowthStep,
		},
		Kernel: tomlKernel{
			WriteFailurePolicy: writeFailurePolicyString(s.Kernel.WriteFailurePolicy),
		},
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("ecsconfig: encoding: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func growthPolicyString(p ecs.GrowthPolicy) string {
	if p == ecs.GrowthStep {
		return "step"
	}
	return "doubling"
}

func writeFailurePolicyString(p ecs.WriteFailurePolicy) string {
	switch p {
	case ecs.Log:
		return "log"
	case ecs.Ignore:
		return "ignore"
	default:
		return "throw"
	}
}
