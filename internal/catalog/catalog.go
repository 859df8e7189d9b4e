package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/*.json schema/*.json
var embedded embed.FS

const (
	questionsFile = "questions.json"
	nodesFile     = "nodes.json"
)

// Catalog holds the static question and node banks.
type Catalog struct {
	Questions []Question
	Nodes     []NodeDefinition

	// Warnings lists problems that do not stop loading, such as questions
	// whose error type falls back to the default stability delta.
	Warnings []string

	questionByID map[string]*Question
}

// Default loads the banks compiled into the binary.
func Default() (*Catalog, error) {
	data, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded banks: %w", err)
	}
	return Load(data)
}

// Load reads questions.json and nodes.json from fsys, validates both against
// the embedded schemas, and runs the semantic checks.
func Load(fsys fs.FS) (*Catalog, error) {
	var c Catalog
	if err := decodeValidated(fsys, questionsFile, "questions.schema.json", &c.Questions); err != nil {
		return nil, err
	}
	if err := decodeValidated(fsys, nodesFile, "nodes.schema.json", &c.Nodes); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// New builds a catalog from in-memory banks. Used by tests and tools that
// assemble banks programmatically; the same semantic checks apply.
func New(questions []Question, nodes []NodeDefinition) (*Catalog, error) {
	c := &Catalog{Questions: questions, Nodes: nodes}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.index()
	return c, nil
}

func (c *Catalog) index() {
	c.questionByID = make(map[string]*Question, len(c.Questions))
	for i := range c.Questions {
		c.questionByID[c.Questions[i].ID] = &c.Questions[i]
	}
}

// Question returns a question by ID.
func (c *Catalog) Question(id string) (Question, bool) {
	q, ok := c.questionByID[id]
	if !ok {
		return Question{}, false
	}
	return *q, true
}

// DistrictNames returns the distinct districts referenced by nodes, in
// first-appearance order.
func (c *Catalog) DistrictNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range c.Nodes {
		if !seen[n.District] {
			seen[n.District] = true
			out = append(out, n.District)
		}
	}
	return out
}

func decodeValidated(fsys fs.FS, file, schemaFile string, v any) error {
	raw, err := fs.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	schema, err := compileSchema(schemaFile)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("%s: schema validation failed: %w", file, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", file, err)
	}
	return nil
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := embedded.ReadFile("schema/" + name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}
	c := jsonschema.NewCompiler()
	url := "schema://" + name
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return compiled, nil
}

// validate performs the checks a schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func (c *Catalog) validate() error {
	var errs []string
	c.Warnings = nil
	v := validator.New()

	if len(c.Questions) == 0 {
		errs = append(errs, "question bank is empty")
	}
	qids := make(map[string]bool, len(c.Questions))
	for _, q := range c.Questions {
		if qids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		qids[q.ID] = true
		errs = append(errs, fieldErrors("question", q.ID, v.Struct(q))...)
		if !IsDomain(q.Domain) {
			errs = append(errs, fmt.Sprintf("question %q has unknown domain %q", q.ID, q.Domain))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %q correctIndex %d outside %d options", q.ID, q.CorrectIndex, len(q.Options)))
		}
		if !KnownErrorType(q.ErrorType) {
			c.Warnings = append(c.Warnings, fmt.Sprintf("question %q has unknown error type %q", q.ID, q.ErrorType))
		}
	}

	for _, n := range c.Nodes {
		errs = append(errs, fieldErrors("node", n.ID, v.Struct(n))...)
		if !IsDistrict(n.District) {
			errs = append(errs, fmt.Sprintf("node %q has unknown district %q", n.ID, n.District))
		}
		for _, d := range n.Domains() {
			if !IsDomain(d) {
				errs = append(errs, fmt.Sprintf("node %q references unknown domain %q", n.ID, d))
			}
		}
		for d := range n.Rewards.DomainXP {
			if !IsDomain(d) {
				errs = append(errs, fmt.Sprintf("node %q rewards unknown domain %q", n.ID, d))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// fieldErrors flattens struct tag violations into validation messages.
func fieldErrors(kind, id string, err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err != nil {
			return []string{fmt.Sprintf("%s %q: %v", kind, id, err)}
		}
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s %q: field %s failed %q (value %v)", kind, id, fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return out
}
