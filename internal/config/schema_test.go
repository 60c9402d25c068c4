// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, SchemaID, schema["$id"])
	assert.Equal(t, "ShadowGrid Configuration", schema["title"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema has no properties")
	for _, key := range []string{"database", "log", "observability", "generation"} {
		assert.Contains(t, props, key)
	}
}

func TestValidateSchema_ValidPartialConfig(t *testing.T) {
	ResetSchemaCache()

	yaml := `
log:
  level: debug
`
	assert.NoError(t, ValidateSchema([]byte(yaml)))
}

func TestValidateSchema_EmptyData(t *testing.T) {
	assert.NoError(t, ValidateSchema(nil))
}

func TestValidateSchema_MalformedYAML(t *testing.T) {
	err := ValidateSchema([]byte("log: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestValidateSchema_UnknownProperty(t *testing.T) {
	yaml := `
telemetry:
  enabled: true
`
	err := ValidateSchema([]byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestValidateSchema_WrongType(t *testing.T) {
	yaml := `
generation:
  default_complexity: lots
`
	assert.Error(t, ValidateSchema([]byte(yaml)))
}
