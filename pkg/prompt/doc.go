// Package prompt drives a form.Controller from an interactive terminal. The
// Driver interface wraps survey prompts; Session asks for each field in
// declaration order through the widget the widgets registry picks for it, feeds answers to the controller as change events (array
// fields as explicit option toggles) and repeats the question until the
// controller has no error for it, then submits.
package prompt
