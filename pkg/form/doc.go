// Package form implements the form state controller: it owns the current
// record, turns change, blur and toggle events into record updates, keeps a
// visible error map in step with the compiled validation schema and only
// hands the record to the submit callback when every field validates.
//
// Revalidation is dependency aware. Changing a field revalidates that field
// and every touched field whose rules reference it (confirmPassword when
// password changes, for example), so cross-field messages never go stale.
//
// Each field moves Pristine -> Touched -> Valid/Invalid; submission marks
// every field touched and does not freeze state.
package form
