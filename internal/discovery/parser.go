package discovery

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pharaoh/internal/domain"
)

// Parser parses spec files into test suites
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// caseDocument is one YAML document of a spec file
type caseDocument struct {
	Name   *string `yaml:"name"`
	Cmd    *string `yaml:"cmd"`
	Stdin  string  `yaml:"stdin"`
	Stdout string  `yaml:"stdout"`
	Stderr string  `yaml:"stderr"`
	Status int     `yaml:"status"`
}

// ParseFile reads the spec file at path into a suite named suiteName
func (p *Parser) ParseFile(path, suiteName string) (domain.TestSuite, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.TestSuite{}, fmt.Errorf("error reading file %s: %w", path, err)
	}
	defer f.Close()

	suite, err := p.Parse(f, suiteName)
	if err != nil {
		return domain.TestSuite{}, fmt.Errorf("%s: %w", path, err)
	}
	return suite, nil
}

// Parse decodes every YAML document of r into one test case, in document order.
// Case names are qualified with the suite name.
func (p *Parser) Parse(r io.Reader, suiteName string) (domain.TestSuite, error) {
	suite := domain.TestSuite{Name: suiteName}
	dec := yaml.NewDecoder(r)

	for n := 1; ; n++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.TestSuite{}, fmt.Errorf("document %d: %w", n, err)
		}
		if isEmptyDocument(&node) {
			continue
		}

		var doc caseDocument
		if err := node.Decode(&doc); err != nil {
			return domain.TestSuite{}, fmt.Errorf("document %d: %w", n, err)
		}
		if doc.Name == nil || *doc.Name == "" {
			return domain.TestSuite{}, fmt.Errorf("document %d: missing required field %q", n, "name")
		}
		if doc.Cmd == nil || *doc.Cmd == "" {
			return domain.TestSuite{}, fmt.Errorf("document %d (%s): missing required field %q", n, *doc.Name, "cmd")
		}

		suite.Tests = append(suite.Tests, domain.TestCase{
			Name:   domain.QualifiedName(suiteName, *doc.Name),
			Cmd:    *doc.Cmd,
			Stdin:  doc.Stdin,
			Stdout: doc.Stdout,
			Stderr: doc.Stderr,
			Status: doc.Status,
		})
	}

	return suite, nil
}

// isEmptyDocument reports whether a decoded document holds nothing, e.g. a
// trailing "---" or a file with only comments
func isEmptyDocument(node *yaml.Node) bool {
	if node.Kind == 0 {
		return true
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return true
		}
		inner := node.Content[0]
		return inner.Kind == yaml.ScalarNode && inner.ShortTag() == "!!null"
	}
	return false
}
