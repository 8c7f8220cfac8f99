package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/julianstephens/daybook/internal/constants"
)

type DebugCmd struct {
	StorePath DebugStorePathCmd `cmd:"" help:"Show the resolved store location."`
	DumpSlot  DebugDumpSlotCmd  `cmd:"" help:"Dump a slot's raw JSON."`
	Slots     DebugSlotsCmd     `cmd:"" help:"List slot keys present in the store."`
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path":       ctx.Medium.GetConfigPath(),
		"config_dir": ctx.ConfigDir,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.println(string(jsonBytes))
	return nil
}

type DebugDumpSlotCmd struct {
	Key string `arg:"" help:"Slot key, e.g. reminders or moods."`
}

func (cmd *DebugDumpSlotCmd) Run(ctx *Context) error {
	if err := ctx.Medium.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if !slices.Contains(constants.AllSlots, cmd.Key) {
		return fmt.Errorf("unknown slot: %s (known: %v)", cmd.Key, constants.AllSlots)
	}

	raw, ok, err := ctx.Medium.Get(cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to read slot: %w", err)
	}
	if !ok {
		return fmt.Errorf("slot not set: %s", cmd.Key)
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		// Malformed slots are shown verbatim
		ctx.println(raw)
		return nil
	}
	jsonBytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal slot: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}

type DebugSlotsCmd struct{}

func (cmd *DebugSlotsCmd) Run(ctx *Context) error {
	if err := ctx.Medium.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	keys, err := ctx.Medium.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		ctx.println(k)
	}
	return nil
}
