package adminapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	schemaBase   = "https://riskzones.local/schemas/"
	maxBodyBytes = 64 << 10
)

// errBadRequest marks request bodies that failed decoding or validation.
var errBadRequest = errors.New("bad request")

type schemas struct {
	point      *jsonschema.Schema
	createZone *jsonschema.Schema
	join       *jsonschema.Schema
	chat       *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	c := jsonschema.NewCompiler()

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("reading schemas: %w", err)
	}
	for _, e := range entries {
		data, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", e.Name(), err)
		}
		if err := c.AddResource(schemaBase+e.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("adding schema %s: %w", e.Name(), err)
		}
	}

	var s schemas
	for name, dst := range map[string]**jsonschema.Schema{
		"point.schema.json":       &s.point,
		"create_zone.schema.json": &s.createZone,
		"join.schema.json":        &s.join,
		"chat.schema.json":        &s.chat,
	} {
		sch, err := c.Compile(schemaBase + name)
		if err != nil {
			return nil, fmt.Errorf("compiling schema %s: %w", name, err)
		}
		*dst = sch
	}

	return &s, nil
}

// decode validates the JSON body against sch, then unmarshals it into dst.
func decode(r *http.Request, sch *jsonschema.Schema, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", errBadRequest, err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("%w: body exceeds %d bytes", errBadRequest, maxBodyBytes)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	return nil
}
