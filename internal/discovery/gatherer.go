package discovery

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"pharaoh/internal/domain"
)

// Gatherer produces the collection of test suites to run
type Gatherer interface {
	Gather(ctx context.Context) (domain.TestSuiteCollection, error)
}

var _ Gatherer = (*YAMLGatherer)(nil)

// YAMLGatherer collects test suites from the YAML files below a search directory
type YAMLGatherer struct {
	searchDir string
	scanner   *Scanner
	parser    *Parser
	workers   int
	log       *slog.Logger
}

// NewYAMLGatherer creates a gatherer for searchDir; files are parsed by up to
// workers goroutines
func NewYAMLGatherer(searchDir string, skipDirs []string, workers int, log *slog.Logger) *YAMLGatherer {
	if workers < 1 {
		workers = 1
	}
	return &YAMLGatherer{
		searchDir: searchDir,
		scanner:   NewScanner(skipDirs),
		parser:    NewParser(),
		workers:   workers,
		log:       log,
	}
}

// Gather scans the search directory and parses every spec file into a suite,
// keeping suites in sorted path order
func (g *YAMLGatherer) Gather(ctx context.Context) (domain.TestSuiteCollection, error) {
	files, err := g.scanner.Scan(g.searchDir)
	if err != nil {
		return domain.TestSuiteCollection{}, domain.NewError(domain.KindGather, "scan "+g.searchDir, err)
	}
	g.log.Debug("spec files found", "dir", g.searchDir, "files", len(files))

	mapper := iter.Mapper[string, domain.TestSuite]{MaxGoroutines: g.workers}
	suites, err := mapper.MapErr(files, func(path *string) (domain.TestSuite, error) {
		if err := ctx.Err(); err != nil {
			return domain.TestSuite{}, err
		}
		return g.parser.ParseFile(*path, SuiteName(g.searchDir, *path))
	})
	if err != nil {
		return domain.TestSuiteCollection{}, domain.NewError(domain.KindGather, "parse spec files", err)
	}

	collection := domain.NewTestSuiteCollection(suites...)
	g.log.Info("test cases gathered", "suites", len(collection.TestSuites), "cases", collection.CaseCount())
	return collection, nil
}
