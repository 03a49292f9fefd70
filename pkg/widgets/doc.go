// Package widgets picks the input widget used to collect a field's value:
// free text, masked text, single choice or multiple choice.
package widgets
