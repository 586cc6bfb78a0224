package schema

import (
	"github.com/advisor-site/lead-intake/internal/models"
)

const draft04 = "http://json-schema.org/draft-04/schema#"

// Document renders the rule table of a form as a JSON Schema document.
func Document(form models.FormName) (map[string]interface{}, error) {
	rules, err := Rules(form)
	if err != nil {
		return nil, err
	}
	return document(form, rules), nil
}

func document(form models.FormName, rules []Rule) map[string]interface{} {
	properties := make(map[string]interface{}, len(rules))
	required := make([]interface{}, 0, len(rules))

	for _, r := range rules {
		prop := map[string]interface{}{
			"type":        "string",
			"description": r.Message,
		}
		switch r.Kind {
		case KindMinLength:
			prop["minLength"] = r.MinLength
		case KindEnum:
			options := make([]interface{}, len(r.Options))
			for i, o := range r.Options {
				options[i] = o
			}
			prop["enum"] = options
		case KindEmail:
			prop["format"] = "email"
		}
		properties[r.Field] = prop
		required = append(required, r.Field)
	}

	return map[string]interface{}{
		"$schema":    draft04,
		"title":      string(form),
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
