// Package chip maps lm-sensors chip names and feature tokens to
// human-readable component names and measurement units.
package chip

import "strings"

// kinds maps chip name prefixes to component names.
var kinds = []struct {
	prefix string
	name   string
}{
	{"coretemp", "CPU"},
	{"k10temp", "CPU"},
	{"k8temp", "CPU"},
	{"zenpower", "CPU"},
	{"cpu_thermal", "CPU"},
	{"amdgpu", "GPU (AMD)"},
	{"radeon", "GPU (AMD)"},
	{"nouveau", "GPU (NVIDIA)"},
	{"i915", "GPU (Intel)"},
	{"nvme", "NVMe SSD"},
	{"drivetemp", "HDD/SSD"},
	{"iwlwifi", "WiFi"},
	{"ath", "WiFi"},
	{"mt7", "WiFi"},
	{"pch", "PCH (Chipset)"},
	{"acpitz", "ACPI Thermal"},
	{"it87", "Motherboard"},
	{"nct", "Motherboard"},
	{"w83", "Motherboard"},
	{"f71", "Motherboard"},
	{"asus", "Motherboard"},
	{"thinkpad", "Laptop EC"},
	{"dell_smm", "Laptop EC"},
	{"BAT", "Battery"},
	{"ucsi_source_psy", "USB-C"},
}

// Kind returns a component name for a chip such as "coretemp-isa-0000",
// or "Sensor" when the chip is not known.
func Kind(name string) string {
	lower := strings.ToLower(name)
	for _, k := range kinds {
		if strings.HasPrefix(lower, strings.ToLower(k.prefix)) {
			return k.name
		}
	}
	return "Sensor"
}

// units maps feature types from `sensors -u` to display units.
var units = []struct {
	typ  string
	unit string
}{
	{"temp", "°C"},
	{"fan", "RPM"},
	{"in", "V"},
	{"power", "W"},
	{"curr", "A"},
	{"energy", "J"},
	{"humidity", "%"},
	{"intrusion", ""},
	{"beep_enable", ""},
}

// Unit returns the unit of a feature token such as "temp1" or "fan2",
// or "" when it is unknown.
func Unit(feature string) string {
	typ := featureType(feature)
	for _, u := range units {
		if typ == u.typ {
			return u.unit
		}
	}
	return ""
}

// IsTemp reports whether feature is a temperature.
func IsTemp(feature string) bool {
	return featureType(feature) == "temp"
}

func featureType(feature string) string {
	return strings.TrimRight(feature, "0123456789")
}
