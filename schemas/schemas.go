// Package schemas embeds the JSON Schemas for transcript and policy files.
package schemas

import _ "embed"

//go:embed transcript.schema.json
var TranscriptSchemaJSON string

//go:embed policy.schema.json
var PolicySchemaJSON string
