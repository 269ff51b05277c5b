package resolution

import "errors"

// DefaultRatio is used whenever a ratio is unknown or not yet chosen.
const DefaultRatio = "1:1"

var (
	ErrInvalidRatio  = errors.New("invalid aspect ratio")
	ErrInvalidPreset = errors.New("invalid resolution preset")
)

type (
	// Ratio is the parsed form of an aspect ratio key such as "16:9".
	Ratio struct {
		Width  int
		Height int
	}

	// Preset is a fixed width x height combination.
	Preset struct {
		Width  int
		Height int
	}

	// Selection is the ratio/resolution pair a host keeps per node.
	Selection struct {
		Ratio      string `json:"ratio"`
		Resolution string `json:"resolution"`
	}
)
