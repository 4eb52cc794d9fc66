package content

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// NodeCount is the fixed number of stops on the journey map.
const NodeCount = 10

// ErrInvalidCatalog wraps every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed healthquest.json
var defaultCatalogJSON []byte

// Catalog is the read-only content source. It is never mutated after Parse.
type Catalog struct {
	zones        []ZoneInfo
	questions    []Question
	nodes        []Node
	achievements []Achievement

	byID   map[string]Question
	byZone map[Zone][]Question
}

type catalogDoc struct {
	Zones        []ZoneInfo    `json:"zones"`
	Questions    []Question    `json:"questions"`
	Nodes        []Node        `json:"nodes"`
	Achievements []Achievement `json:"achievements"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded Health Quest catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadFile reads and parses a catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates a catalog document against the catalog schema, decodes
// it and checks cross references.
func Parse(data []byte) (*Catalog, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", ErrInvalidCatalog, err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: schema validation failed: %w", ErrInvalidCatalog, err)
	}

	var doc catalogDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidCatalog, err)
	}
	return New(doc.Zones, doc.Questions, doc.Nodes, doc.Achievements)
}

// New builds a catalog from already-decoded parts. Tests use it to build
// small catalogs without JSON.
func New(zones []ZoneInfo, questions []Question, nodes []Node, achievements []Achievement) (*Catalog, error) {
	c := &Catalog{
		zones:        zones,
		questions:    questions,
		nodes:        make([]Node, len(nodes)),
		achievements: achievements,
		byID:         make(map[string]Question, len(questions)),
		byZone:       make(map[Zone][]Question),
	}
	for i, n := range nodes {
		n.Index = i
		c.nodes[i] = n
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	for _, q := range questions {
		c.byID[q.ID] = q
		if q.Zone != "" {
			c.byZone[q.Zone] = append(c.byZone[q.Zone], q)
		}
	}
	return c, nil
}

func (c *Catalog) validate() error {
	known := make(map[Zone]bool, len(c.zones))
	for _, z := range c.zones {
		if z.ID == ZoneMixed {
			return fmt.Errorf("zone id %q is reserved", ZoneMixed)
		}
		known[z.ID] = true
	}

	seen := make(map[string]bool, len(c.questions))
	for _, q := range c.questions {
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if q.Zone != "" && !known[q.Zone] {
			return fmt.Errorf("question %q: unknown zone %q", q.ID, q.Zone)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %q: needs at least 2 options", q.ID)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("question %q: correctIndex %d out of range", q.ID, q.CorrectIndex)
		}
		if q.XP <= 0 {
			return fmt.Errorf("question %q: xp must be positive", q.ID)
		}
	}

	if len(c.nodes) != NodeCount {
		return fmt.Errorf("expected %d nodes, got %d", NodeCount, len(c.nodes))
	}
	for _, n := range c.nodes {
		if n.Zone != ZoneMixed && !known[n.Zone] {
			return fmt.Errorf("node %d: unknown zone %q", n.Index, n.Zone)
		}
	}

	ids := make(map[string]bool, len(c.achievements))
	for _, a := range c.achievements {
		if ids[a.ID] {
			return fmt.Errorf("duplicate achievement id %q", a.ID)
		}
		ids[a.ID] = true
		if a.Rule.Kind == RuleZoneTiles && !known[a.Rule.Zone] {
			return fmt.Errorf("achievement %q: unknown zone %q", a.ID, a.Rule.Zone)
		}
	}
	return nil
}

// Question looks a tile up by id.
func (c *Catalog) Question(id string) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Questions returns every tile in catalog order.
func (c *Catalog) Questions() []Question {
	return c.questions
}

// ZoneQuestions returns the tiles of one zone in catalog order.
func (c *Catalog) ZoneQuestions(z Zone) []Question {
	return c.byZone[z]
}

// Zones returns the zone list.
func (c *Catalog) Zones() []ZoneInfo {
	return c.zones
}

// ZoneName returns the display name of z, or the raw id when unknown.
func (c *Catalog) ZoneName(z Zone) string {
	if z == ZoneMixed {
		return "Mixed"
	}
	for _, info := range c.zones {
		if info.ID == z {
			return info.Name
		}
	}
	return string(z)
}

// Nodes returns the ten journey nodes in map order.
func (c *Catalog) Nodes() []Node {
	return c.nodes
}

// Node returns the node at index, or false when out of range.
func (c *Catalog) Node(index int) (Node, bool) {
	if index < 0 || index >= len(c.nodes) {
		return Node{}, false
	}
	return c.nodes[index], true
}

// Achievements returns the achievement definitions in catalog order.
func (c *Catalog) Achievements() []Achievement {
	return c.achievements
}

// QuestionIDs returns every tile id, sorted.
func (c *Catalog) QuestionIDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, not Go-typed maps.
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://healthquest-catalog.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(schemaURL)
	})
	return schemaCompiled, schemaErr
}
