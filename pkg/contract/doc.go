// Package contract embeds the OpenAPI 3 description of the prediction
// endpoint and checks request payloads and responses against it using
// kin-openapi.
package contract
