// Package definition loads form definitions from JSON, YAML or TOML documents and
// bundles the personal-data registration form used by the CLI. Documents
// decode straight into model.FormModel; compile the result with
// validation.Compile before use.
package definition
