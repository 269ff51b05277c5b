package resolution

// ratioOrder is the order ratios are offered in the ratio dropdown.
var ratioOrder = []string{
	"1:1",
	"2:3", "3:2",
	"3:4", "4:3",
	"7:9", "9:7",
	"9:16", "16:9",
	"9:21", "21:9",
}

// Portrait and square families. Landscape families are derived by swapping
// each preset so the two sides of a reciprocal pair can never drift apart.
var baseFamilies = map[string][]Preset{
	"1:1": {
		{512, 512}, {768, 768}, {1024, 1024}, {1280, 1280}, {1536, 1536}, {2048, 2048},
	},
	"2:3": {
		{640, 960}, {768, 1152}, {832, 1248}, {1024, 1536}, {1248, 1872}, {1664, 2496},
	},
	"3:4": {
		{480, 640}, {720, 960}, {864, 1152}, {1104, 1472}, {1296, 1728}, {1728, 2304},
	},
	"7:9": {
		{448, 576}, {560, 720}, {896, 1152}, {1120, 1440}, {1344, 1728}, {1792, 2304},
	},
	"9:16": {
		{432, 768}, {576, 1024}, {720, 1280}, {864, 1536}, {1152, 2048}, {1512, 2688},
	},
	"9:21": {
		{384, 896}, {432, 1008}, {576, 1344}, {720, 1680}, {864, 2016}, {1312, 3072},
	},
}

var (
	presetTable = map[string][]Preset{}
	labelTable  = map[string][]string{}
)

func init() {
	for ratio, presets := range baseFamilies {
		presetTable[ratio] = presets

		parsed, err := ParseRatio(ratio)
		if err != nil {
			panic(err)
		}
		mirror := parsed.Reciprocal().String()
		if mirror == ratio {
			continue
		}

		swapped := make([]Preset, len(presets))
		for i, p := range presets {
			swapped[i] = p.Swap()
		}
		presetTable[mirror] = swapped
	}

	for ratio, presets := range presetTable {
		labels := make([]string, len(presets))
		for i, p := range presets {
			labels[i] = p.String()
		}
		labelTable[ratio] = labels
	}
}

// Ratios returns the supported ratio keys in dropdown order.
func Ratios() []string {
	out := make([]string, len(ratioOrder))
	copy(out, ratioOrder)
	return out
}

func IsSupported(ratio string) bool {
	_, ok := presetTable[ratio]
	return ok
}

// PresetValuesFor is PresetsFor with typed values instead of labels.
func PresetValuesFor(ratio string) []Preset {
	presets, ok := presetTable[ratio]
	if !ok {
		presets = presetTable[DefaultRatio]
	}
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}
