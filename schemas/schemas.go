// Package schemas embeds the JSON Schemas for scorecard input documents.
package schemas

import _ "embed"

//go:embed benchmark.schema.json
var BenchmarkSchemaJSON string

//go:embed strategy.schema.json
var StrategySchemaJSON string
