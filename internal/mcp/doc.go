// Package mcp exposes the MIB index over the Model Context Protocol.
//
// The server speaks MCP over stdio and registers five tools:
//
//   - index_mibs: parse and index a directory of MIB files
//   - translate_name: symbolic name to numeric OID with attributes
//   - describe_oid: numeric OID (with optional instance suffix) to object,
//     decoding a sampled value against the object's enumeration
//   - search_objects: full-text search over names and descriptions
//   - get_status: index statistics and health for a directory
//
// Tool responses are JSON-formatted text. Errors use JSON-RPC style codes:
// -32602 invalid params, -32603 internal, -32001 not indexed, -32002
// indexing in progress, -32003 object not found, -32004 empty query.
//
// Only one index_mibs run is admitted at a time; concurrent requests fail
// fast with -32002 instead of queueing.
package mcp
