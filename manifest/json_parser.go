package manifest

import (
	"encoding/json"
)

// JSONParser implements Parser for JSON.
type JSONParser struct{}

// NewJSONParser creates a new JSONParser.
func NewJSONParser() Parser {
	return &JSONParser{}
}

// Parse unmarshals JSON bytes into a Manifest struct.
func (p *JSONParser) Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
