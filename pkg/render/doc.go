// Package render formats submitted records and validation results for
// terminal and machine consumption. Renderers are looked up by name through a
// Registry; Default wires the json, yaml and pretty formats.
package render
