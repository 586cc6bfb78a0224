package intake

import (
	"maps"

	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/schema"
)

// fieldErrors validates values against form and returns the message of every
// failing field among fields.
func fieldErrors(form models.FormName, values map[string]string, fields []string) map[string]string {
	result, err := schema.ValidateFields(form, schema.FromValues(values), fields)
	if err != nil {
		// unknown form: nothing can pass
		out := make(map[string]string, len(fields))
		for _, f := range fields {
			out[f] = err.Error()
		}
		return out
	}
	return result.ByField()
}

// emptyValues returns every field of form set to "".
func emptyValues(form models.FormName) map[string]string {
	fields := schema.Fields(form)
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = ""
	}
	return values
}

// setValue returns copies of values and errs with field set. A field that is
// currently in error is re-validated so the message tracks the input.
func setValue(form models.FormName, values, errs map[string]string, field, value string) (map[string]string, map[string]string) {
	values = maps.Clone(values)
	values[field] = value

	errs = maps.Clone(errs)
	if _, failing := errs[field]; failing {
		delete(errs, field)
		if msg, ok := fieldErrors(form, values, []string{field})[field]; ok {
			errs[field] = msg
		}
	}
	return values, errs
}
