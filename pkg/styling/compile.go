package styling

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
	"gopkg.in/yaml.v3"
)

// Declaration is a single CSS property/value pair
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

func (d Declaration) body() string {
	if d.Important {
		return d.Property + ":" + d.Value + " !important"
	}
	return d.Property + ":" + d.Value
}

// Declarations is an ordered list of declarations.
// In YAML it is written as a mapping of property to value.
type Declarations []Declaration

// UnmarshalYAML reads a property mapping, keeping order
func (ds *Declarations) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: styles must be a mapping", node.Line)
	}

	out := make(Declarations, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q must be a scalar", value.Line, key.Value)
		}

		decl := Declaration{Property: strings.TrimSpace(key.Value), Value: strings.TrimSpace(value.Value)}
		if v, ok := strings.CutSuffix(decl.Value, "!important"); ok {
			decl.Value = strings.TrimSpace(v)
			decl.Important = true
		}
		out = append(out, decl)
	}

	*ds = out
	return nil
}

// ParseDeclarations parses a declaration block such as
// "display: inline-block; height: auto"
func ParseDeclarations(block string) (Declarations, error) {
	parsed, err := parser.ParseDeclarations(block)
	if err != nil {
		return nil, fmt.Errorf("failed to parse declarations: %w", err)
	}

	decls := make(Declarations, 0, len(parsed))
	for _, d := range parsed {
		decls = append(decls, Declaration{
			Property:  strings.ToLower(strings.TrimSpace(d.Property)),
			Value:     strings.TrimSpace(d.Value),
			Important: d.Important,
		})
	}
	return decls, nil
}

// CompileDeclarations compiles a declaration block into atomic definitions
func CompileDeclarations(block string) (DefinitionSet, error) {
	decls, err := ParseDeclarations(block)
	if err != nil {
		return nil, err
	}
	return Compile(decls), nil
}

// Compile turns each declaration into one atomic definition keyed by
// the camelCase property name. Identical declarations always produce the
// same class name.
func Compile(decls Declarations) DefinitionSet {
	set := make(DefinitionSet, 0, len(decls))
	for _, d := range decls {
		set = set.Merge(DefinitionSet{{Property: camelCase(d.Property), Definition: CompileDeclaration(d)}})
	}
	return set
}

// CompileDeclaration builds the definition of a single declaration
func CompileDeclaration(d Declaration) Definition {
	className := ClassName(d)
	def := Definition{
		ClassName: className,
		CSS:       "." + className + "{" + d.body() + ";}",
	}

	if flipped := FlipDeclaration(d); flipped != d {
		def.RTLCSS = ".r" + className + "{" + flipped.body() + ";}"
	}
	return def
}

// ClassName derives the class name of a declaration from its hash
func ClassName(d Declaration) string {
	h := sha256.Sum256([]byte(d.body()))
	return "a" + hex.EncodeToString(h[:])[:7]
}

// FlipDeclaration mirrors a declaration for right-to-left layouts
func FlipDeclaration(d Declaration) Declaration {
	flipped := d
	flipped.Property = swapLeftRight(d.Property)

	switch d.Property {
	case "float", "clear", "text-align":
		flipped.Value = swapLeftRight(d.Value)
	case "margin", "padding", "border-width", "border-color", "border-style":
		// top right bottom left
		parts := strings.Fields(d.Value)
		if len(parts) == 4 {
			parts[1], parts[3] = parts[3], parts[1]
			flipped.Value = strings.Join(parts, " ")
		}
	}
	return flipped
}

func swapLeftRight(s string) string {
	const marker = "\x00"
	s = strings.ReplaceAll(s, "left", marker)
	s = strings.ReplaceAll(s, "right", "left")
	return strings.ReplaceAll(s, marker, "right")
}

func camelCase(property string) string {
	// custom properties keep their name
	if strings.HasPrefix(property, "--") {
		return property
	}

	parts := strings.Split(strings.TrimPrefix(property, "-"), "-")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// SourceRule is one conditional group of a style source
type SourceRule struct {
	When   Selectors    `yaml:"when"`
	Styles Declarations `yaml:"styles"`
}

// Source is the authored form of a component's styles
type Source struct {
	Name      string       `yaml:"name"`
	ClassName string       `yaml:"className"`
	Rules     []SourceRule `yaml:"rules"`
}

// ParseSource reads a YAML style source
func ParseSource(data []byte) (*Source, error) {
	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("failed to parse style source: %w", err)
	}
	if src.Name == "" {
		return nil, fmt.Errorf("style source has no name")
	}
	// the name becomes the bundle's file name
	if strings.ContainsAny(src.Name, `/\`) || strings.Contains(src.Name, "..") {
		return nil, fmt.Errorf("invalid style source name %q", src.Name)
	}
	return &src, nil
}

// Compile compiles every rule of the source
func (s *Source) Compile() *Bundle {
	bundle := &Bundle{
		Name:      s.Name,
		ClassName: s.ClassName,
		Rules:     make([]Rule, 0, len(s.Rules)),
	}
	for _, r := range s.Rules {
		bundle.Rules = append(bundle.Rules, Rule{
			When:        r.When,
			Definitions: Compile(r.Styles),
		})
	}
	return bundle
}

// Bundle is the compiled, serialized styles of one component
type Bundle struct {
	Name      string `json:"name"`
	ClassName string `json:"className,omitempty"`
	Rules     []Rule `json:"rules"`
}

// Hook returns a StylesHook over the bundle's rules
func (b *Bundle) Hook() *StylesHook {
	return MakeStyles(b.Rules)
}

// LoadBundle decodes a JSON bundle
func LoadBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	return &b, nil
}
