package core

import "strconv"

// Parameter is a single labelled value shown on the status HUD.
type Parameter struct {
	Key   string
	Label string
	Value string
}

// ParameterSnapshot captures the values shown on the HUD for one frame.
type ParameterSnapshot struct {
	Params []Parameter
}

// Add appends a string-valued parameter.
func (s *ParameterSnapshot) Add(key, label, value string) {
	s.Params = append(s.Params, Parameter{Key: key, Label: label, Value: value})
}

// AddInt appends an integer parameter.
func (s *ParameterSnapshot) AddInt(key, label string, v int) {
	s.Add(key, label, strconv.Itoa(v))
}

// AddFloat appends a float parameter formatted with the given precision.
func (s *ParameterSnapshot) AddFloat(key, label string, v float64, prec int) {
	s.Add(key, label, strconv.FormatFloat(v, 'f', prec, 64))
}

// AddBool appends a flag rendered as on/off.
func (s *ParameterSnapshot) AddBool(key, label string, v bool) {
	value := "off"
	if v {
		value = "on"
	}
	s.Add(key, label, value)
}

// Lookup finds a parameter by key.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, p := range s.Params {
		if p.Key == key {
			return p, true
		}
	}
	return Parameter{}, false
}
