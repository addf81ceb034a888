package lmsensors

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const acpiOutput = "acpitz-acpi-0\nAdapter: ACPI interface\ntemp1:\n  temp1_input: 27.800\n  temp1_crit: 119.000\n\nvirtual-0\nfan1:\n  fan1_input: N/A\n"

func TestReportReadings(t *testing.T) {
	rep, err := ParseText(acpiOutput)
	require.NoError(t, err)

	readings := rep.Readings()
	require.Len(t, readings, 3)

	assert.Equal(t, Reading{
		Device:  "acpitz-acpi-0",
		Adapter: "ACPI interface",
		Sensor:  "temp1",
		Feature: "temp1",
		Key:     "input",
		Value:   27.8,
	}, readings[0])
	assert.Equal(t, "crit", readings[1].Key)
	assert.Equal(t, "acpitz-acpi-0/temp1", readings[1].ID())
	assert.Equal(t, "virtual-0", readings[2].Device)
	assert.Equal(t, "", readings[2].Adapter)
	assert.True(t, math.IsNaN(readings[2].Value))
}

func TestReportAccessorsReturnCopies(t *testing.T) {
	rep, err := ParseText(acpiOutput)
	require.NoError(t, err)

	names := rep.Names()
	names[0] = "changed"
	assert.Equal(t, "acpitz-acpi-0", rep.Names()[0])

	d, _ := rep.Device("acpitz-acpi-0")
	s, _ := d.Sensor("temp1")
	vals := s.Values()
	vals["input"] = 0
	v, _ := s.Value("input")
	assert.Equal(t, 27.8, v)
}

func TestReportMarshalJSON(t *testing.T) {
	rep, err := ParseText(acpiOutput)
	require.NoError(t, err)

	b, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"acpitz-acpi-0": {"adapter": "ACPI interface", "sensors": {"temp1": {"input": 27.8, "crit": 119}}},
		"virtual-0": {"adapter": null, "sensors": {"fan1": {"input": null}}}
	}`, string(b))

	// Key order follows the input.
	s := string(b)
	assert.Less(t, strings.Index(s, "acpitz-acpi-0"), strings.Index(s, "virtual-0"))
	assert.Less(t, strings.Index(s, `"input"`), strings.Index(s, `"crit"`))
}

func TestReportMarshalJSONEmpty(t *testing.T) {
	b, err := json.Marshal(newReport())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestReportMarshalYAML(t *testing.T) {
	rep, err := ParseText(acpiOutput)
	require.NoError(t, err)

	b, err := yaml.Marshal(rep)
	require.NoError(t, err)

	var decoded map[string]struct {
		Adapter *string                       `yaml:"adapter"`
		Sensors map[string]map[string]float64 `yaml:"sensors"`
	}
	require.NoError(t, yaml.Unmarshal(b, &decoded))

	acpi := decoded["acpitz-acpi-0"]
	require.NotNil(t, acpi.Adapter)
	assert.Equal(t, "ACPI interface", *acpi.Adapter)
	assert.Equal(t, map[string]float64{"input": 27.8, "crit": 119}, acpi.Sensors["temp1"])

	virt := decoded["virtual-0"]
	assert.Nil(t, virt.Adapter)
	assert.True(t, math.IsNaN(virt.Sensors["fan1"]["input"]))

	s := string(b)
	assert.Less(t, strings.Index(s, "acpitz-acpi-0"), strings.Index(s, "virtual-0"))
}

func TestReportMarshalYAMLQuotesAmbiguousNames(t *testing.T) {
	rep, err := ParseText("123\nAdapter: true\n")
	require.NoError(t, err)

	b, err := yaml.Marshal(rep)
	require.NoError(t, err)

	var decoded map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal(b, &decoded))
	require.Contains(t, decoded, "123")
	assert.Equal(t, "true", decoded["123"]["adapter"])
}
