//go:build linux

package wayland

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Object IDs assigned by us (client range: 2–0xfeffffff).
const (
	idDisplay   uint32 = 1
	idRegistry  uint32 = 2
	idCallback1 uint32 = 3 // sync after registry request
	idSeat      uint32 = 4
	idDCManager uint32 = 5 // zwlr_data_control_manager_v1
	idDCSource  uint32 = 6 // zwlr_data_control_source_v1
	idDCDevice  uint32 = 7 // zwlr_data_control_device_v1
	idCallback2 uint32 = 8 // sync after set_selection
)

// Serve claims the clipboard and blocks, writing the payload for a MIME type
// to the fd the compositor hands over on each paste request. It returns when
// another client takes the selection or the compositor goes away. Payloads
// may be binary (image data) as well as text.
func Serve(formats map[string][]byte) error {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}
	if runtimeDir == "" {
		return fmt.Errorf("wayland: XDG_RUNTIME_DIR not set")
	}

	c, err := dial(filepath.Join(runtimeDir, display))
	if err != nil {
		return fmt.Errorf("wayland: connect %s: %w", filepath.Join(runtimeDir, display), err)
	}
	defer c.close()

	seatName, dcManagerName, err := discoverGlobals(c)
	if err != nil {
		return err
	}

	if err := bindAndClaim(c, seatName, dcManagerName, formats); err != nil {
		return err
	}

	return serveRequests(c, formats)
}

// discoverGlobals asks for the registry, syncs, and collects the numeric
// names of wl_seat and the data-control manager.
func discoverGlobals(c *conn) (seatName, dcManagerName uint32, err error) {
	if err := c.request(idDisplay, 1 /*get_registry*/, putUint32(idRegistry)); err != nil {
		return 0, 0, err
	}
	if err := c.request(idDisplay, 0 /*sync*/, putUint32(idCallback1)); err != nil {
		return 0, 0, err
	}

	var seatFound, dcManagerFound bool
	for {
		objectID, opcode, payload, fd, err := c.nextEvent()
		if err != nil {
			return 0, 0, err
		}
		if fd >= 0 {
			closeFd(fd)
		}

		switch {
		case objectID == idRegistry && opcode == 0 /*global*/ :
			if len(payload) < 4 {
				continue
			}
			name := le.Uint32(payload[:4])
			iface, _, decErr := getString(payload[4:])
			if decErr != nil {
				continue
			}
			switch iface {
			case "wl_seat":
				seatName = name
				seatFound = true
			case "zwlr_data_control_manager_v1":
				dcManagerName = name
				dcManagerFound = true
			}

		case objectID == idCallback1 && opcode == 0 /*done*/ :
			if !seatFound {
				return 0, 0, fmt.Errorf("wayland: wl_seat not found")
			}
			if !dcManagerFound {
				return 0, 0, fmt.Errorf("wayland: zwlr_data_control_manager_v1 not found (compositor may not support wlr-data-control)")
			}
			return seatName, dcManagerName, nil
		}
	}
}

// bindAndClaim binds the globals, creates a data source offering every MIME
// type, sets the selection and syncs until ownership is confirmed.
func bindAndClaim(c *conn, seatName, dcManagerName uint32, formats map[string][]byte) error {
	// wl_registry.bind new_id encodes inline: [name][interface string][version][new_id]
	if err := c.request(idRegistry, 0 /*bind*/, args(
		putUint32(seatName),
		putString("wl_seat"),
		putUint32(1),
		putUint32(idSeat),
	)); err != nil {
		return err
	}
	if err := c.request(idRegistry, 0 /*bind*/, args(
		putUint32(dcManagerName),
		putString("zwlr_data_control_manager_v1"),
		putUint32(2),
		putUint32(idDCManager),
	)); err != nil {
		return err
	}

	if err := c.request(idDCManager, 0 /*create_data_source*/, putUint32(idDCSource)); err != nil {
		return err
	}

	// Offer MIME types in a stable order.
	mimeTypes := make([]string, 0, len(formats))
	for mimeType := range formats {
		mimeTypes = append(mimeTypes, mimeType)
	}
	sort.Strings(mimeTypes)
	for _, mimeType := range mimeTypes {
		if err := c.request(idDCSource, 0 /*offer*/, putString(mimeType)); err != nil {
			return err
		}
	}

	if err := c.request(idDCManager, 1 /*get_data_device*/, args(
		putUint32(idDCDevice),
		putUint32(idSeat),
	)); err != nil {
		return err
	}
	if err := c.request(idDCDevice, 0 /*set_selection*/, putUint32(idDCSource)); err != nil {
		return err
	}
	if err := c.request(idDisplay, 0 /*sync*/, putUint32(idCallback2)); err != nil {
		return err
	}

	for {
		objectID, opcode, _, fd, err := c.nextEvent()
		if err != nil {
			return err
		}
		if fd >= 0 {
			closeFd(fd)
		}
		if objectID == idCallback2 && opcode == 0 /*done*/ {
			return nil
		}
	}
}

// serveRequests answers zwlr_data_control_source_v1 events until the source
// is cancelled.
func serveRequests(c *conn, formats map[string][]byte) error {
	for {
		objectID, opcode, payload, fd, err := c.nextEvent()
		if err != nil {
			// Connection closed means the compositor exited; treat as done.
			return nil
		}

		if objectID != idDCSource {
			if fd >= 0 {
				closeFd(fd)
			}
			continue
		}

		switch opcode {
		case 0: // send
			mimeType, _, _ := getString(payload)
			if fd >= 0 {
				if data, ok := formats[mimeType]; ok {
					writeAll(fd, data)
				}
				closeFd(fd)
			}
		case 1: // cancelled
			return nil
		}
	}
}
