package prototype

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kahuna/rule"
	"github.com/katalvlaran/kahuna/space"
	"github.com/katalvlaran/kahuna/state"
)

// Faces is the number of neighbor lists per prototype.
const Faces = 6

var validate = validator.New()

// Prototype describes one tile module.
type Prototype struct {
	MeshName     string
	MeshRotation uint8
	// Face socket labels, carried through for mesh tooling.
	PosX, NegX, PosY, NegY, PosZ, NegZ string
	ConstrainTo                        string
	ConstrainFrom                      string
	Weight                             uint32
	// ValidNeighbors[i] lists the ids allowed at space.Directions()[i].
	ValidNeighbors [Faces][]string
}

// record is the wire form. Weight is a pointer so a missing weight is an
// error rather than a silent zero.
type record struct {
	MeshName       string     `yaml:"mesh_name" validate:"required"`
	MeshRotation   uint8      `yaml:"mesh_rotation" validate:"lte=3"`
	PosX           string     `yaml:"pos_x"`
	NegX           string     `yaml:"neg_x"`
	PosY           string     `yaml:"pos_y"`
	NegY           string     `yaml:"neg_y"`
	PosZ           string     `yaml:"pos_z"`
	NegZ           string     `yaml:"neg_z"`
	ConstrainTo    string     `yaml:"constrain_to"`
	ConstrainFrom  string     `yaml:"constrain_from"`
	Weight         *uint32    `yaml:"weight" validate:"required"`
	ValidNeighbors [][]string `yaml:"valid_neighbors" validate:"len=6,dive,dive,required"`
}

func (r record) prototype() Prototype {
	p := Prototype{
		MeshName:      r.MeshName,
		MeshRotation:  r.MeshRotation,
		PosX:          r.PosX,
		NegX:          r.NegX,
		PosY:          r.PosY,
		NegY:          r.NegY,
		PosZ:          r.PosZ,
		NegZ:          r.NegZ,
		ConstrainTo:   r.ConstrainTo,
		ConstrainFrom: r.ConstrainFrom,
		Weight:        *r.Weight,
	}
	for i, ids := range r.ValidNeighbors {
		p.ValidNeighbors[i] = append([]string(nil), ids...)
	}

	return p
}

// Set is a validated collection of prototypes keyed by id.
type Set struct {
	protos map[string]Prototype
	ids    []string
}

// Parse decodes and validates a prototype document.
func Parse(data []byte) (*Set, error) {
	raw := map[string]record{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySet
		}
		return nil, fmt.Errorf("prototype: decode: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptySet
	}

	s := &Set{protos: make(map[string]Prototype, len(raw)), ids: make([]string, 0, len(raw))}
	for id := range raw {
		s.ids = append(s.ids, id)
	}
	sort.Strings(s.ids)

	for _, id := range s.ids {
		r := raw[id]
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPrototype, id, err)
		}
		s.protos[id] = r.prototype()
	}
	for _, id := range s.ids {
		for face, ids := range s.protos[id].ValidNeighbors {
			for _, n := range ids {
				if _, ok := s.protos[n]; !ok {
					return nil, fmt.Errorf("%w: %q in %q face %d", ErrUnknownNeighbor, n, id, face)
				}
			}
		}
	}

	return s, nil
}

// Load reads and parses the prototype document at path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prototype: read %s: %w", path, err)
	}

	return Parse(data)
}

// IDs returns the prototype ids in sorted order.
func (s *Set) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of prototypes.
func (s *Set) Len() int { return len(s.ids) }

// Get returns the prototype with the given id.
func (s *Set) Get(id string) (Prototype, bool) {
	p, ok := s.protos[id]
	return p, ok
}

// Universe returns the set of every id, in sorted order.
func (s *Set) Universe() *state.SetState[string] {
	return state.NewSet(s.ids...)
}

// Weights returns a fresh id → weight table.
func (s *Set) Weights() map[string]uint32 {
	w := make(map[string]uint32, len(s.ids))
	for _, id := range s.ids {
		w[id] = s.protos[id].Weight
	}

	return w
}

// Builder returns a rule builder over Universe with one Allow per
// (id, face), in id order then face order.
func (s *Set) Builder(obs rule.Observer[*state.SetState[string]]) *rule.Builder[space.Offset, *state.SetState[string]] {
	b := rule.NewBuilder[space.Offset](obs, s.Universe())
	dirs := space.Directions()
	for _, id := range s.ids {
		self := state.NewFinal(id)
		for face, ids := range s.protos[id].ValidNeighbors {
			b.Allow(self, rule.Allow(dirs[face], state.NewSet(ids...)))
		}
	}

	return b
}

// WeightedRule builds the rule with a Weighted observer over the prototype
// weights.
func (s *Set) WeightedRule() *rule.Rule[space.Offset, *state.SetState[string]] {
	return s.Builder(rule.NewWeighted[string, *state.SetState[string]](s.Weights())).Build()
}
