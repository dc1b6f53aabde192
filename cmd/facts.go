package cmd

import (
	"os"

	"github.com/golemcloud/rib/inferred"
	"github.com/golemcloud/rib/internal/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = log.DefaultLogger.With("section", "cli")

// factsFile is the document read by the unify and check commands.
type factsFile struct {
	Facts []*inferred.Type `yaml:"facts"`
}

func loadFacts(path string) ([]*inferred.Type, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read facts")
	}
	return parseFacts(content, path)
}

func parseFacts(content []byte, source string) ([]*inferred.Type, error) {
	var file factsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, errors.Wrapf(err, "could not parse facts in %s", source)
	}
	if len(file.Facts) == 0 {
		return nil, errors.Errorf("no facts found in %s", source)
	}
	logger.Debug("loaded facts", "source", source, "count", len(file.Facts))
	return file.Facts, nil
}

func formatType(t *inferred.Type, asYAML bool) (string, error) {
	if !asYAML {
		return t.String(), nil
	}
	out, err := yaml.Marshal(t)
	if err != nil {
		return "", errors.Wrap(err, "could not encode type")
	}
	return string(out), nil
}
