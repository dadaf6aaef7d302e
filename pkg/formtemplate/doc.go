// Package formtemplate decodes interactive "form" chat messages into a typed
// tree of elements and classifies each element into a renderable ContentType.
//
// Payloads arrive from the transport layer as generic records
// ([]map[string]any), raw JSON or YAML. Every field is optional except the
// label and value of select options. Classification follows a two-tier rule:
// the element's top-level "type" is authoritative whenever it is present, and
// "data.type" is consulted only when the top-level tag is missing entirely.
// Submit buttons rely on the second tier.
package formtemplate
