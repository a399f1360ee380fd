/*
Package yaml provides methods to parse feature.Schema specifications
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/mrcluk/sprig/feature"
	yaml "gopkg.in/yaml.v2"
)

// Metadata is the content of a metadata document: the schema of the
// events and the name of the column holding their outcome.
type Metadata struct {
	Schema  *feature.Schema
	Outcome string
}

/*
ReadMetadata takes a slice of bytes with a schema specification in YML and
returns the metadata parsed from it or an error.
The YML is expected to be an object with a features property holding a list
of features in event order. Every item is an object with a name and a type,
'continuous' or 'categorical' (continuous when omitted). An optional outcome
property names the column with the events' outcome.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	doc := struct {
		Features []struct {
			Name string `yaml:"name"`
			Type string `yaml:"type"`
		} `yaml:"features"`
		Outcome string `yaml:"outcome"`
	}{}
	err := yaml.Unmarshal(md, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	if len(doc.Features) == 0 {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	declarations := make([]feature.Declaration, 0, len(doc.Features))
	for _, f := range doc.Features {
		var kind feature.Kind
		switch f.Type {
		case "", "continuous":
			kind = feature.Continuous
		case "categorical", "discrete":
			kind = feature.Categorical
		default:
			return nil, fmt.Errorf("invalid feature declaration type %q for %s", f.Type, f.Name)
		}
		declarations = append(declarations, feature.Declaration{Name: f.Name, Kind: kind})
	}
	s, err := feature.NewSchema(declarations...)
	if err != nil {
		return nil, err
	}
	return &Metadata{Schema: s, Outcome: doc.Outcome}, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	m, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %v", filepath, err)
	}
	return m, err
}
