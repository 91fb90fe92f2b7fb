// Package planfile decodes media plans from YAML, TOML and JSON files.
package planfile

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driven"
)

var (
	_ driven.PlanReader = (*YAMLReader)(nil)
	_ driven.PlanReader = (*TOMLReader)(nil)
	_ driven.PlanReader = (*JSONReader)(nil)
)

// YAMLReader decodes YAML plan files.
type YAMLReader struct{}

// Read decodes a plan.
func (YAMLReader) Read(r io.Reader) (*domain.PlanFile, error) {
	var plan domain.PlanFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: plan file is empty", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: decoding yaml plan: %v", domain.ErrInvalidInput, err)
	}
	return checked(&plan)
}

// TOMLReader decodes TOML plan files, with items as [[plan]] tables.
type TOMLReader struct{}

// Read decodes a plan.
func (TOMLReader) Read(r io.Reader) (*domain.PlanFile, error) {
	var plan domain.PlanFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("%w: decoding toml plan: %v", domain.ErrInvalidInput, err)
	}
	return checked(&plan)
}

// JSONReader decodes JSON plan files.
type JSONReader struct{}

// Read decodes a plan.
func (JSONReader) Read(r io.Reader) (*domain.PlanFile, error) {
	var plan domain.PlanFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("%w: decoding json plan: %v", domain.ErrInvalidInput, err)
	}
	return checked(&plan)
}

// ForPath picks a reader by file extension. Unknown extensions read as YAML.
func ForPath(path string) driven.PlanReader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOMLReader{}
	case ".json":
		return JSONReader{}
	default:
		return YAMLReader{}
	}
}

// checked rejects plans without items. Reach validation is left to the calculator.
func checked(plan *domain.PlanFile) (*domain.PlanFile, error) {
	if len(plan.Plan) == 0 {
		return nil, fmt.Errorf("%w: plan file lists no channels", domain.ErrInvalidInput)
	}
	for i := range plan.Plan {
		plan.Plan[i].Name = strings.TrimSpace(plan.Plan[i].Name)
		if plan.Plan[i].Name == "" {
			return nil, fmt.Errorf("%w: plan item %d has no name", domain.ErrInvalidInput, i+1)
		}
	}
	return plan, nil
}
