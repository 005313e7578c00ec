package ledger

import (
	"fmt"
	"time"

	"github.com/custodia-tech/settlement-backend/internal/model"
	"github.com/custodia-tech/settlement-backend/pkg/safe"
)

// SlotConfig maps wall-clock time into the slot numbering of one network.
type SlotConfig struct {
	ZeroTime   int64 // unix seconds of slot ZeroSlot
	ZeroSlot   uint64
	SlotLength int64 // seconds per slot
}

var slotConfigs = map[model.Network]SlotConfig{
	model.Mainnet: {ZeroTime: 1596059091, ZeroSlot: 4492800, SlotLength: 1},
	model.Preprod: {ZeroTime: 1655769600, ZeroSlot: 86400, SlotLength: 1},
	model.Preview: {ZeroTime: 1666656000, ZeroSlot: 0, SlotLength: 1},
}

// SlotConfigFor returns the slot numbering parameters of a network.
func SlotConfigFor(network model.Network) (SlotConfig, error) {
	cfg, ok := slotConfigs[network]
	if !ok {
		return SlotConfig{}, fmt.Errorf("no slot config for network %q", network)
	}
	return cfg, nil
}

// SlotAt converts a wall-clock time into the containing slot number.
// Times before the network's slot zero are rejected.
func (c SlotConfig) SlotAt(t time.Time) (uint64, error) {
	delta := t.Unix() - c.ZeroTime
	offset, err := safe.Uint64(delta)
	if err != nil {
		return 0, fmt.Errorf("time %s precedes slot zero: %w", t.UTC().Format(time.RFC3339), err)
	}
	return c.ZeroSlot + offset/uint64(c.SlotLength), nil
}

// TimeAt converts a slot number back into wall-clock time.
func (c SlotConfig) TimeAt(slot uint64) time.Time {
	if slot < c.ZeroSlot {
		return time.Unix(c.ZeroTime, 0).UTC()
	}
	return time.Unix(c.ZeroTime+int64(slot-c.ZeroSlot)*c.SlotLength, 0).UTC()
}
