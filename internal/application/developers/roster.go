package developers

// defaultRoster is the initial contributor list applied to a fresh planning
// interval. Explicitly removed developers are not re-added later; see
// EnsureDefaults.
var defaultRoster = []struct {
	team string
	key  string
}{
	{"Tungsten", "JRE"}, {"Tungsten", "DKA"}, {"Tungsten", "LRU"},
	{"Tungsten", "RGA"}, {"Tungsten", "LOR"}, {"Tungsten", "OMO"},
	{"Neon", "BRO"}, {"Neon", "MPL"}, {"Neon", "LBU"},
	{"Neon", "RTH"}, {"Neon", "IWI"}, {"Neon", "STH"},
	{"Hydrogen 1", "TSC"}, {"Hydrogen 1", "GRO"},
	{"Hydrogen 1", "MBR"}, {"Hydrogen 1", "PSC"}, {"Hydrogen 1", "SFR"},
	{"Hydrogen 1", "DMA"}, {"Hydrogen 1", "VNA"}, {"Hydrogen 1", "RBU"},
	{"Zn2C", "JEI"}, {"Zn2C", "YHU"}, {"Zn2C", "PNI"},
	{"Zn2C", "VTS"}, {"Zn2C", "PSA"}, {"Zn2C", "MMA"},
	{"Zn2C", "LMA"}, {"Zn2C", "RSA"}, {"Zn2C", "NAC"},
}
