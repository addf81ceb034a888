package lmsensors

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Report is the parsed output of one `sensors -u` run: devices in the
// order they first appear.
type Report struct {
	names   []string
	devices map[string]*Device
}

// Device is a sensor chip such as "coretemp-isa-0000".
type Device struct {
	Name string
	// Adapter is nil until an "Adapter:" line is seen for the device.
	Adapter *string

	sensorNames []string
	sensors     map[string]*Sensor
}

// Sensor holds the readings of one feature, keyed by reading type
// ("input", "max", "crit", ...).
type Sensor struct {
	Name string

	feature string
	keys    []string
	values  map[string]float64
}

// Reading is a single flattened value of a report.
type Reading struct {
	Device  string
	Adapter string
	Sensor  string
	Feature string
	Key     string
	Value   float64
}

// ID returns a unique identifier for the sensor a reading belongs to.
func (r Reading) ID() string {
	return r.Device + "/" + r.Sensor
}

func newReport() *Report {
	return &Report{devices: make(map[string]*Device)}
}

// upsert returns the device called name, creating it on first use.
func (r *Report) upsert(name string) *Device {
	if d, ok := r.devices[name]; ok {
		return d
	}
	d := &Device{Name: name, sensors: make(map[string]*Sensor)}
	r.devices[name] = d
	r.names = append(r.names, name)
	return d
}

// Len returns the number of devices.
func (r *Report) Len() int { return len(r.names) }

// Names returns device names in order of appearance.
func (r *Report) Names() []string {
	return append([]string(nil), r.names...)
}

// Device looks up a device by name.
func (r *Report) Device(name string) (*Device, bool) {
	d, ok := r.devices[name]
	return d, ok
}

// Readings flattens the report in document order.
func (r *Report) Readings() []Reading {
	var out []Reading
	for _, dn := range r.names {
		d := r.devices[dn]
		for _, sn := range d.sensorNames {
			s := d.sensors[sn]
			for _, k := range s.keys {
				out = append(out, Reading{
					Device:  d.Name,
					Adapter: d.AdapterName(),
					Sensor:  s.Name,
					Feature: s.feature,
					Key:     k,
					Value:   s.values[k],
				})
			}
		}
	}
	return out
}

// AdapterName returns the adapter, or "" when none was reported.
func (d *Device) AdapterName() string {
	if d.Adapter == nil {
		return ""
	}
	return *d.Adapter
}

// setAdapter records the adapter unless one is already set.
func (d *Device) setAdapter(a string) {
	if d.Adapter == nil {
		d.Adapter = &a
	}
}

// declare creates the named sensor, or empties it if it already exists.
func (d *Device) declare(name string) *Sensor {
	if s, ok := d.sensors[name]; ok {
		s.feature = ""
		s.keys = nil
		s.values = make(map[string]float64)
		return s
	}
	s := &Sensor{Name: name, values: make(map[string]float64)}
	d.sensors[name] = s
	d.sensorNames = append(d.sensorNames, name)
	return s
}

// SensorNames returns sensor names in order of appearance.
func (d *Device) SensorNames() []string {
	return append([]string(nil), d.sensorNames...)
}

// Sensor looks up a sensor by name.
func (d *Device) Sensor(name string) (*Sensor, bool) {
	s, ok := d.sensors[name]
	return s, ok
}

func (s *Sensor) set(feature, key string, v float64) {
	if s.feature == "" {
		s.feature = feature
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Value returns the reading stored under key.
func (s *Sensor) Value(key string) (float64, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns reading keys in order of appearance.
func (s *Sensor) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of readings.
func (s *Sensor) Len() int { return len(s.keys) }

// Feature returns the raw feature token of the first value line, for
// example "temp1" or "fan2".
func (s *Sensor) Feature() string { return s.feature }

// Values returns a copy of the readings as a plain map.
func (s *Sensor) Values() map[string]float64 {
	out := make(map[string]float64, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the report as an ordered object. Non-finite values
// are encoded as null.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dn := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, dn)
		buf.WriteString(`:{"adapter":`)
		d := r.devices[dn]
		if d.Adapter == nil {
			buf.WriteString("null")
		} else {
			writeJSONString(&buf, *d.Adapter)
		}
		buf.WriteString(`,"sensors":{`)
		for j, sn := range d.sensorNames {
			if j > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(&buf, sn)
			buf.WriteByte(':')
			writeJSONSensor(&buf, d.sensors[sn])
		}
		buf.WriteString("}}")
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONSensor(buf *bytes.Buffer, s *Sensor) {
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, k)
		buf.WriteByte(':')
		v := s.values[k]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	buf.WriteByte('}')
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// MarshalYAML encodes the report as an ordered mapping.
func (r *Report) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, dn := range r.names {
		d := r.devices[dn]

		adapter := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if d.Adapter != nil {
			adapter = strNode(*d.Adapter)
		}

		sensors := &yaml.Node{Kind: yaml.MappingNode}
		for _, sn := range d.sensorNames {
			s := d.sensors[sn]
			values := &yaml.Node{Kind: yaml.MappingNode}
			for _, k := range s.keys {
				values.Content = append(values.Content, strNode(k), floatNode(s.values[k]))
			}
			sensors.Content = append(sensors.Content, strNode(sn), values)
		}

		dev := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			strNode("adapter"), adapter,
			strNode("sensors"), sensors,
		}}
		root.Content = append(root.Content, strNode(dn), dev)
	}
	return root, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func floatNode(v float64) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch {
	case math.IsNaN(v):
		n.Value = ".nan"
	case math.IsInf(v, 1):
		n.Value = ".inf"
	case math.IsInf(v, -1):
		n.Value = "-.inf"
	default:
		n.Value = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return n
}
