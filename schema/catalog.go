// Package schema implements a catalog of JSON schemas keyed by document
// kind, generated from Go structs and used to validate manifests before
// they are accepted as candidates.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	jsv "github.com/santhosh-tekuri/jsonschema/v5"
)

// Catalog stores schemas per document kind using in-memory storage.
type Catalog struct {
	mu        sync.RWMutex
	schemas   map[string]string
	compiled  map[string]*jsv.Schema
	reflector *jsonschema.Reflector
}

// Option configures the Catalog.
type Option func(*Catalog)

// WithReflector replaces the default schema reflector.
func WithReflector(r *jsonschema.Reflector) Option {
	return func(c *Catalog) { c.reflector = r }
}

// NewCatalog creates an empty schema catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		schemas:   make(map[string]string),
		compiled:  make(map[string]*jsv.Schema),
		reflector: new(jsonschema.Reflector),
	}
	c.reflector.ExpandedStruct = true

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a schema for a document kind and compiles it for
// validation. model can be a Go struct (the schema is generated from it), a
// raw JSON schema string, or raw schema bytes. Registering the same kind
// twice is an error.
func (c *Catalog) Register(kind string, model any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.schemas[kind]; exists {
		return fmt.Errorf("document kind already registered: %s", kind)
	}

	var schemaStr string
	switch v := model.(type) {
	case string:
		schemaStr = v
	case []byte:
		schemaStr = string(v)
	default:
		s := c.reflector.Reflect(model)
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal generated schema: %w", err)
		}
		schemaStr = string(b)
	}

	compiler := jsv.NewCompiler()
	url := kind + ".schema.json"
	if err := compiler.AddResource(url, strings.NewReader(schemaStr)); err != nil {
		return fmt.Errorf("failed to add schema resource for %s: %w", kind, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return fmt.Errorf("failed to compile schema for %s: %w", kind, err)
	}

	c.schemas[kind] = schemaStr
	c.compiled[kind] = compiled
	return nil
}

// GetSchema retrieves the JSON schema for a document kind.
func (c *Catalog) GetSchema(kind string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.schemas[kind]
	return s, ok
}

// List returns all registered document kinds.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	kinds := make([]string, 0, len(c.schemas))
	for k := range c.schemas {
		kinds = append(kinds, k)
	}
	return kinds
}

// ValidateJSON validates a JSON document against the schema registered for
// kind.
func (c *Catalog) ValidateJSON(kind string, data []byte) error {
	c.mu.RLock()
	compiled, ok := c.compiled[kind]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no schema registered for document kind %s", kind)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("document does not match %s schema: %w", kind, err)
	}
	return nil
}
