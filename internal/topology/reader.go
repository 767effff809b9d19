package topology

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/primecycle/internal/platform"
)

// Read takes one snapshot of the attached, non-mirroring displays. A device
// whose current settings cannot be read is skipped with a warning; the
// snapshot is authoritative for the rest of the run.
func Read(svc platform.Service) (Topology, error) {
	devices, err := svc.EnumerateDevices()
	if err != nil {
		return Topology{}, fmt.Errorf("failed to enumerate displays: %w", err)
	}

	var top Topology
	for _, dev := range devices {
		if !dev.Attached || dev.Mirroring {
			slog.Debug("ignoring display device",
				"device", dev.ID,
				"attached", dev.Attached,
				"mirroring", dev.Mirroring,
			)
			continue
		}

		settings, err := svc.CurrentSettings(dev)
		if err != nil {
			slog.Warn("skipping display with unreadable settings", "device", dev.ID, "error", err)
			top.Skipped = append(top.Skipped, dev.ID)
			continue
		}

		top.Monitors = append(top.Monitors, Monitor{Device: dev, Settings: settings})
		slog.Debug("found display",
			"index", len(top.Monitors)-1,
			"device", dev.ID,
			"position", settings.Position.String(),
			"primary", dev.Primary,
		)
	}

	if len(top.Monitors) == 0 {
		return top, ErrNoDisplays
	}
	return top, nil
}
